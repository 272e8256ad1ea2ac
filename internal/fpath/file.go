package fpath

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns the names of the regular files in dir that match any of the given shell patterns
// (doublestar syntax, e.g. "*.config.{ts,js}"). Subdirectories are not traversed. The result is sorted.
func FindFiles(dir string, patterns ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		for _, pattern := range patterns {
			ok, err := doublestar.Match(filepath.ToSlash(pattern), e.Name())
			if err != nil {
				return nil, fmt.Errorf("file pattern '%s' is not supported: %s", pattern, err)
			}
			if ok {
				files = append(files, e.Name())
				break
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// Exists returns true if name exists and is not a directory.
func Exists(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}
