package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories that never hold sources to check. The last two are written
// by the runners themselves.
var skipDirs = map[string]bool{
	".git":               true,
	"bin":                true,
	"build-logs":         true,
	"checkstyle-reports": true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// JavaFiles lists .java files relative to repoPath, slash-separated and
// sorted. When repoPath/src exists only that tree is walked.
func (s *FileScanner) JavaFiles(repoPath string) ([]string, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}

	root := absPath
	if fi, err := os.Stat(filepath.Join(absPath, "src")); err == nil && fi.IsDir() {
		root = filepath.Join(absPath, "src")
	}

	seen := make(map[string]bool)
	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}

		relPath, err := filepath.Rel(absPath, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if !seen[relPath] {
			seen[relPath] = true
			files = append(files, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", repoPath, err)
	}

	sort.Strings(files)
	return files, nil
}
