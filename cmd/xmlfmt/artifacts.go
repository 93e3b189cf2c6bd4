package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
)

// dirSink writes debug artifacts as files under dir, created on first use.
type dirSink struct {
	dir string
}

func (ds dirSink) Artifact(name string, data []byte) error {
	if err := os.MkdirAll(ds.dir, 0755); err != nil {
		return err
	}
	return renameio.WriteFile(filepath.Join(ds.dir, name), data, 0644)
}

// sub returns a sink for the named input under ds.
func (ds dirSink) sub(name string) dirSink {
	name = strings.TrimLeft(filepath.ToSlash(filepath.Clean(name)), "./")
	name = strings.ReplaceAll(strings.Trim(name, "<>"), "/", "_")
	return dirSink{filepath.Join(ds.dir, name)}
}
