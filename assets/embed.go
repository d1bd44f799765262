// Package assets embeds the paint scripts shipped with the editor.
package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Scripts returns the built-in scripts rooted at their directory.
func Scripts() fs.FS {
	sub, err := fs.Sub(scriptsFS, "scripts")
	if err != nil {
		panic("assets: " + err.Error())
	}
	return sub
}

// LoadScript reads one built-in script by name, with or without the
// scripts/ prefix and .tengo extension.
func LoadScript(name string) ([]byte, error) {
	return fs.ReadFile(Scripts(), cleanScriptPath(name))
}

func cleanScriptPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "assets/")
	s = strings.TrimPrefix(s, "scripts/")
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
