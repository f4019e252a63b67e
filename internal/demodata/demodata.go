// Package demodata embeds a small sample dataset so the `demo` subcommand
// can run the pipeline without any external input files, since the
// ordinary data-directory flag always expects files on disk but a demo
// mode needs one that ships with the binary.
package demodata

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed data/*.json
var files embed.FS

// Materialize copies the embedded dataset into dir so the ordinary
// loader.Load(dataDir) path can read it like any other input directory.
func Materialize(dir string) error {
	entries, err := files.ReadDir("data")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		raw, err := files.ReadFile(filepath.Join("data", entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, entry.Name()), raw, 0o644); err != nil {
			return err
		}
	}
	return nil
}
