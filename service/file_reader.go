package service

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/scorediff/domain"
)

// FileReaderImpl resolves score file paths and glob patterns
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectScoreFiles expands paths and glob patterns into a sorted list of
// score files. Literal paths must exist; patterns may match nothing.
func (f *FileReaderImpl) CollectScoreFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		if !isGlobPattern(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, domain.NewFileNotFoundError(pattern, err)
			}
			if info.IsDir() {
				dirFiles, err := f.collectFromDirectory(pattern)
				if err != nil {
					return nil, err
				}
				for _, p := range dirFiles {
					add(p)
				}
				continue
			}
			add(pattern)
			continue
		}

		base, rest := doublestar.SplitPattern(pattern)
		matches, err := doublestar.Glob(os.DirFS(base), rest)
		if err != nil {
			return nil, domain.NewInvalidInputError("invalid glob pattern "+pattern, err)
		}
		for _, m := range matches {
			path := filepath.Join(base, m)
			if f.IsValidScoreFile(path) {
				add(path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsValidScoreFile checks if a file looks like a readable score file
func (f *FileReaderImpl) IsValidScoreFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".musicxml":
		return true
	}
	return false
}

// FileExists checks if a file exists and is not a directory
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if !info.IsDir() && f.IsValidScoreFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
