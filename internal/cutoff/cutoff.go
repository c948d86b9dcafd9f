// Package cutoff derives the incremental-mode boundary: the newest photo
// date already present in the destination tree.
//
// The destination layout is <out>/{RAW,JPEG}/<year>/<month>/<day>/…, so
// the scan walks year, month, and day directories newest-first and stops
// at the first day that contains photo files (recursing into sequence
// subfolders). Dates come from embedded EXIF when decodable, else the
// file's modification time.
package cutoff

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/djherbis/times"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/tulku/picture-sorter/internal/classify"
	"github.com/tulku/picture-sorter/internal/planner"
	"github.com/tulku/picture-sorter/internal/probe"
)

// Find returns the newest photo date under outputDir's RAW and JPEG
// trees. The second return is false when neither tree holds any photo.
// Missing trees are not an error (first run against an empty output).
func Find(outputDir string) (time.Time, bool, error) {
	var (
		newest time.Time
		found  bool
	)
	for _, tree := range []string{planner.RawTree, planner.JPEGTree} {
		t, ok, err := scanTree(filepath.Join(outputDir, tree))
		if err != nil {
			return time.Time{}, false, err
		}
		if ok && (!found || t.After(newest)) {
			newest, found = t, true
		}
	}
	return newest, found, nil
}

// scanTree walks one tree's year/month/day hierarchy newest-first and
// returns the newest photo date from the first day directory that holds
// any photo file.
func scanTree(root string) (time.Time, bool, error) {
	years, err := numericDirs(root)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	for _, year := range years {
		months, err := numericDirs(year)
		if err != nil {
			return time.Time{}, false, err
		}
		for _, month := range months {
			days, err := numericDirs(month)
			if err != nil {
				return time.Time{}, false, err
			}
			for _, day := range days {
				t, ok, err := newestPhotoDate(day)
				if err != nil {
					return time.Time{}, false, err
				}
				if ok {
					return t, true, nil
				}
			}
		}
	}
	return time.Time{}, false, nil
}

// numericDirs lists dir's numerically named subdirectories, newest (largest
// number) first. Non-numeric entries are ignored.
func numericDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type numbered struct {
		n    int
		path string
	}
	dirs := make([]numbered, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		dirs = append(dirs, numbered{n, filepath.Join(dir, e.Name())})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].n > dirs[j].n })

	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = d.path
	}
	return paths, nil
}

// newestPhotoDate returns the newest date among the photo files under dir,
// recursing into sequence subfolders.
func newestPhotoDate(dir string) (time.Time, bool, error) {
	var (
		newest time.Time
		found  bool
	)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !classify.IsPhoto(d.Name()) {
			return nil
		}
		t, ok := photoDate(path)
		if ok && (!found || t.After(newest)) {
			newest, found = t, true
		}
		return nil
	})
	if err != nil {
		return time.Time{}, false, err
	}
	return newest, found, nil
}

// photoDate reads a file's capture date: embedded EXIF when present and
// plausible, else the modification time. Files whose timestamps cannot be
// read at all are skipped.
func photoDate(path string) (time.Time, bool) {
	if f, err := os.Open(path); err == nil {
		x, decErr := exif.Decode(f)
		f.Close()
		if decErr == nil {
			if dt, dtErr := x.DateTime(); dtErr == nil && probe.PlausibleDate(dt) {
				return dt.UTC(), true
			}
		}
	}

	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return ts.ModTime().UTC(), true
}
