package fmtutil

import (
	"os"
	"path/filepath"
)

// FindWDFile looks for a named file in the current working directory, then
// in every parent directory, returning the first match as an absolute path.
// It returns an empty path when no directory has one.
func FindWDFile(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindUpFile(wd, name)
}

// FindUpFile is FindWDFile starting from dir.
func FindUpFile(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		} else if err != nil && !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
