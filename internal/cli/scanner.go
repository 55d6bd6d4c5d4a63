package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/entitydoc/internal/errors"
	"github.com/toyz/entitydoc/internal/utils"
)

// DirectoryScanner expands directory arguments into package directories
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided paths to directories containing Go
// files. Go-style "./..." patterns scan recursively; plain paths do not.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, rootDir := range rootDirs {
		if strings.HasSuffix(rootDir, "/...") || rootDir == "..." {
			baseDir := strings.TrimSuffix(strings.TrimSuffix(rootDir, "..."), "/")
			if baseDir == "" {
				baseDir = "."
			}

			cleanPath, err := filepath.Abs(baseDir)
			if err != nil {
				return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
			}

			found, err := utils.ScanDirectoriesWithGoFiles(cleanPath)
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", cleanPath, err)
			}
			for _, dir := range found {
				add(dir)
			}
			continue
		}

		cleanPath, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", rootDir), err)
		}

		hasGoFiles, err := utils.HasGoFiles(cleanPath)
		if err != nil {
			return nil, errors.WrapFileSystemError("read", cleanPath, err)
		}
		if hasGoFiles {
			add(cleanPath)
		}
	}

	return dirs, nil
}
