package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/tulku/picture-sorter/internal/classify"
)

// Discover walks inputDir and returns every regular file, sorted
// lexicographically for deterministic processing order. Unlike an
// extension filter, everything is collected: sidecars and unknown files
// travel with the photos they belong to.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// GroupUnits partitions file paths into units keyed by the filename's
// base component before the first dot. Every input path lands in exactly
// one unit; iteration order of the input does not matter.
func GroupUnits(files []string) map[string][]string {
	units := make(map[string][]string)
	for _, path := range files {
		key := classify.UnitKey(filepath.Base(path))
		units[key] = append(units[key], path)
	}
	return units
}
