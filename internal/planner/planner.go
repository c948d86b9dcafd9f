package planner

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/djherbis/times"

	"github.com/tulku/picture-sorter/internal/classify"
)

// BuildPlan computes a destination for every file of every unit and
// validates sources and destinations. It returns either a complete plan
// (sorted by source path) or the complete error set, never both: any
// error discards the whole plan so a run never partially mutates the
// destination tree.
func BuildPlan(req Request) ([]Entry, []ValidationError) {
	var (
		entries []Entry
		errs    []ValidationError
	)
	seen := make(map[string]string) // dest -> first source claiming it

	for _, key := range sortedKeys(req.Units) {
		files := append([]string(nil), req.Units[key]...)
		sort.Strings(files)

		date, ok := unitDate(req, key, files, &errs)
		if !ok {
			continue
		}
		if !req.Cutoff.IsZero() && !date.After(req.Cutoff) {
			// Incremental mode: already covered by the destination tree.
			continue
		}

		date = date.UTC()
		dayDir := filepath.Join(date.Format("2006"), date.Format("01"), date.Format("02"))
		if tag, ok := req.Tags[key]; ok {
			dayDir = filepath.Join(dayDir, tag.Folder)
		}

		defaultTree := unitDefaultTree(files)

		for _, src := range files {
			fi, err := os.Stat(src)
			if err != nil {
				errs = append(errs, ValidationError{src, "Source file does not exist or cannot be accessed"})
				continue
			}
			if !fi.Mode().IsRegular() {
				errs = append(errs, ValidationError{src, "Source is not a regular file"})
				continue
			}

			name := filepath.Base(src)
			dest := filepath.Join(req.OutputDir, treeFor(name, defaultTree), dayDir, name)

			if _, err := os.Stat(dest); err == nil {
				errs = append(errs, ValidationError{src, "Destination already exists: " + dest})
				continue
			}
			if _, taken := seen[dest]; taken {
				errs = append(errs, ValidationError{src, "Duplicate destination in plan: " + dest})
				continue
			}
			seen[dest] = src
			entries = append(entries, Entry{Source: src, Dest: dest})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries, nil
}

// unitDate resolves the date that partitions a unit: the cached metadata
// capture date when present, else the representative file's modification
// time. A unit whose time source cannot be read is skipped with an error
// recorded against its representative.
func unitDate(req Request, key string, files []string, errs *[]ValidationError) (time.Time, bool) {
	if d, ok := req.Dates[key]; ok {
		return d, true
	}

	rep, ok := classify.Representative(files)
	if !ok {
		// Sidecar-only unit: fall back to its lexically first file.
		rep = files[0]
	}
	ts, err := times.Stat(rep)
	if err != nil {
		*errs = append(*errs, ValidationError{rep, "Cannot read file metadata"})
		return time.Time{}, false
	}
	return ts.ModTime().UTC(), true
}

// unitDefaultTree picks the tree for files whose own name decides nothing
// (sidecars without a recognized format tag): RAW when the representative
// is a raw file, JPEG otherwise.
func unitDefaultTree(files []string) string {
	rep, ok := classify.Representative(files)
	if ok && classify.IsRaw(filepath.Base(rep)) {
		return RawTree
	}
	return JPEGTree
}

// treeFor routes one file to its destination tree. A recognized embedded
// format tag wins over the literal extension, so IMG020.CR2.jpg lands in
// the RAW tree next to the raw file it annotates. Plain photos go by
// their own extension; anything else inherits the unit default.
func treeFor(name, defaultTree string) string {
	if tag, ok := classify.SidecarFormat(name); ok {
		if classify.IsRawFormat(tag) {
			return RawTree
		}
		if classify.IsJPEGFormat(tag) {
			return JPEGTree
		}
	}
	switch {
	case classify.IsRaw(name):
		return RawTree
	case classify.IsJPEG(name):
		return JPEGTree
	}
	return defaultTree
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
