package file

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/abcplay/constants"
)

type FileNumToSourcePath = map[uint32]string

func CreateFileNumMap(paths []string) FileNumToSourcePath {
	res := make(FileNumToSourcePath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Gather returns path itself when it is a file, or every tune file below it
// when it is a directory, sorted. maxNum > 0 caps the result.
func Gather(path string, maxNum int) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), constants.AbcExtension) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	sort.Strings(paths)
	if maxNum > 0 && len(paths) > maxNum {
		paths = paths[:maxNum]
	}
	return paths, nil
}

func ReadSource(path string) (string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading tune: %w", err)
	}
	return string(dat), nil
}

// OutputName names the rendered file for a tune. The random suffix keeps
// renders of same-named tunes from different directories apart.
func OutputName(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if base == "" || base == "." {
		base = "tune"
	}
	return base + "-" + uuid.NewString()[:8] + constants.MidiExtension
}

func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
