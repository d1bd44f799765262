package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureConsoleOnly(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer
	closer, err := configure(logger, &buf, Options{Level: "debug"})
	require.NoError(t, err)
	defer closer.Close()

	logger.WithField("layer", 2).Debug("painted")
	assert.Contains(t, buf.String(), "painted")
	assert.Contains(t, buf.String(), "layer=2")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestConfigureFile(t *testing.T) {
	logger := logrus.New()
	path := filepath.Join(t.TempDir(), "editor.log")
	var buf bytes.Buffer
	closer, err := configure(logger, &buf, Options{File: path})
	require.NoError(t, err)

	logger.Info("saved level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "saved level")
	assert.Contains(t, buf.String(), "saved level")
}

func TestConfigureBadLevel(t *testing.T) {
	_, err := configure(logrus.New(), &bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}
