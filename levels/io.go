package levels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/sirupsen/logrus"
)

func compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// Encode writes lvl as indented JSON.
func Encode(w io.Writer, lvl *Level) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lvl)
}

// Decode reads a level and rebuilds its map.
func Decode(r io.Reader) (*tilemap.Map, error) {
	var lvl Level
	if err := json.NewDecoder(r).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return lvl.ToMap()
}

// Save writes m to path, gzip-compressed when path ends in .gz.
func Save(path string, m *tilemap.Map) error {
	if path == "" {
		return fmt.Errorf("levels: empty save path")
	}
	var buf bytes.Buffer
	if compressed(path) {
		zw := gzip.NewWriter(&buf)
		if err := Encode(zw, FromMap(m)); err != nil {
			return fmt.Errorf("levels: encode: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("levels: compress: %w", err)
		}
	} else if err := Encode(&buf, FromMap(m)); err != nil {
		return fmt.Errorf("levels: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("levels: write %s: %w", path, err)
	}
	logrus.WithField("path", path).Info("saved level")
	return nil
}

// Load reads a level file written by Save.
func Load(path string) (*tilemap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("levels: decompress %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r)
}
