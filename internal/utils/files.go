package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
	}

	return func(path string, info os.DirEntry) bool {
		name := info.Name()

		// Skip hidden and underscore-prefixed directories, as the go tool does
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}

		return !skipDirs[name]
	}
}

// IsSourceFile reports whether name is a non-test Go file
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

// HasGoFiles checks whether dir directly contains non-test Go files
func HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() && IsSourceFile(entry.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// ScanDirectoriesWithGoFiles walks root and returns every directory below it,
// root included, that contains Go files
func ScanDirectoriesWithGoFiles(root string) ([]string, error) {
	var dirs []string
	filter := DefaultDirectoryFilter()

	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && !filter(path, entry) {
			return filepath.SkipDir
		}

		hasGoFiles, err := HasGoFiles(path)
		if err != nil {
			return err
		}
		if hasGoFiles {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
