package planner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tulku/picture-sorter/internal/sequence"
)

var jan5 = time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
	return path
}

func TestBuildPlan_DatePartition(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	raw := touch(t, in, "IMG001.CR2")
	jpg := touch(t, in, "IMG001.jpg")
	xmp := touch(t, in, "IMG001.CR2.xmp")

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {raw, jpg, xmp}},
		Dates:     map[string]time.Time{"IMG001": jan5},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := map[string]string{
		raw: filepath.Join(out, "RAW", "2024", "01", "05", "IMG001.CR2"),
		jpg: filepath.Join(out, "JPEG", "2024", "01", "05", "IMG001.jpg"),
		xmp: filepath.Join(out, "RAW", "2024", "01", "05", "IMG001.CR2.xmp"),
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for _, e := range entries {
		if want[e.Source] != e.Dest {
			t.Errorf("%s -> %s, want %s", e.Source, e.Dest, want[e.Source])
		}
	}
}

func TestBuildPlan_SequenceFolder(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	a := touch(t, in, "IMG001.jpg")
	b := touch(t, in, "IMG002.jpg")

	tag := sequence.Tag{Kind: sequence.KindHDR, Folder: "IMG001_HDR"}
	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {a}, "IMG002": {b}},
		Dates:     map[string]time.Time{"IMG001": jan5, "IMG002": jan5},
		Tags:      map[string]sequence.Tag{"IMG001": tag, "IMG002": tag},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, e := range entries {
		wantDir := filepath.Join(out, "JPEG", "2024", "01", "05", "IMG001_HDR")
		if filepath.Dir(e.Dest) != wantDir {
			t.Errorf("%s planned into %s, want %s", e.Source, filepath.Dir(e.Dest), wantDir)
		}
	}
}

func TestBuildPlan_SidecarFormatTagRouting(t *testing.T) {
	// A .jpg whose embedded tag names a raw format belongs in the RAW
	// tree despite its literal extension.
	in := t.TempDir()
	out := t.TempDir()
	sidecar := touch(t, in, "IMG020.CR2.jpg")

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG020": {sidecar}},
		Dates:     map[string]time.Time{"IMG020": jan5},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !strings.Contains(entries[0].Dest, string(filepath.Separator)+"RAW"+string(filepath.Separator)) {
		t.Errorf("dest %s, want RAW tree", entries[0].Dest)
	}
}

func TestBuildPlan_MtimeFallback(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	jpg := touch(t, in, "IMG001.jpg")

	mtime := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(jpg, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {jpg}},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := filepath.Join(out, "JPEG", "2023", "07", "01", "IMG001.jpg")
	if entries[0].Dest != want {
		t.Errorf("dest = %s, want %s", entries[0].Dest, want)
	}
}

func TestBuildPlan_SidecarOnlyUnit(t *testing.T) {
	// A unit without any photo file still gets planned: the lexically
	// first file supplies the mtime and the tree defaults to JPEG.
	in := t.TempDir()
	out := t.TempDir()
	xmp := touch(t, in, "IMG050.xmp")

	mtime := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(xmp, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG050": {xmp}},
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	want := filepath.Join(out, "JPEG", "2023", "07", "01", "IMG050.xmp")
	if entries[0].Dest != want {
		t.Errorf("dest = %s, want %s", entries[0].Dest, want)
	}
}

func TestBuildPlan_UnreadableUnitDateIsError(t *testing.T) {
	out := t.TempDir()
	missing := "/nonexistent/IMG060.xmp"

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG060": {missing}},
	})
	if entries != nil || len(errs) != 1 {
		t.Fatalf("got (%v, %v), want single error", entries, errs)
	}
	if errs[0].Path != missing || errs[0].Reason != "Cannot read file metadata" {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestBuildPlan_ConflictIsError(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	raw := touch(t, in, "IMG030.CR2")
	other := touch(t, in, "IMG031.CR2")
	touch(t, out, filepath.Join("RAW", "2024", "01", "05", "IMG030.CR2"))

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG030": {raw}, "IMG031": {other}},
		Dates:     map[string]time.Time{"IMG030": jan5, "IMG031": jan5},
	})
	if entries != nil {
		t.Fatal("conflicting run must not return a plan")
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Path != raw || !strings.HasPrefix(errs[0].Reason, "Destination already exists") {
		t.Errorf("unexpected error: %v", errs[0])
	}
}

func TestBuildPlan_DuplicateDestinationIsError(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	a := touch(t, in, filepath.Join("a", "IMG040.jpg"))
	b := touch(t, in, filepath.Join("b", "IMG040.jpg"))

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG040": {a, b}},
		Dates:     map[string]time.Time{"IMG040": jan5},
	})
	if entries != nil {
		t.Fatal("duplicate destinations must not return a plan")
	}
	if len(errs) != 1 || !strings.HasPrefix(errs[0].Reason, "Duplicate destination in plan") {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestBuildPlan_MissingSource(t *testing.T) {
	out := t.TempDir()
	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {"/nonexistent/IMG001.jpg"}},
		Dates:     map[string]time.Time{"IMG001": jan5},
	})
	if entries != nil || len(errs) != 1 {
		t.Fatalf("got (%v, %v), want single error", entries, errs)
	}
	if errs[0].Reason != "Source file does not exist or cannot be accessed" {
		t.Errorf("reason = %q", errs[0].Reason)
	}
}

func TestBuildPlan_CutoffSkipsOldUnits(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	older := touch(t, in, "IMG001.jpg")
	newer := touch(t, in, "IMG002.jpg")

	cutoff := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {older}, "IMG002": {newer}},
		Dates: map[string]time.Time{
			"IMG001": cutoff.Add(-time.Hour), // omitted, no error
			"IMG002": cutoff.Add(time.Hour),
		},
		Cutoff: cutoff,
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 1 || entries[0].Source != newer {
		t.Errorf("entries = %v, want only %s", entries, newer)
	}
}

func TestBuildPlan_CutoffBoundaryIsExclusive(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	jpg := touch(t, in, "IMG001.jpg")

	entries, errs := BuildPlan(Request{
		OutputDir: out,
		Units:     map[string][]string{"IMG001": {jpg}},
		Dates:     map[string]time.Time{"IMG001": jan5},
		Cutoff:    jan5, // dated exactly at the cutoff: omitted
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(entries) != 0 {
		t.Errorf("unit dated at cutoff must be omitted, got %v", entries)
	}
}

func TestBuildPlan_Deterministic(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	units := map[string][]string{
		"IMG001": {touch(t, in, "IMG001.CR2"), touch(t, in, "IMG001.jpg")},
		"IMG002": {touch(t, in, "IMG002.jpg")},
	}
	dates := map[string]time.Time{"IMG001": jan5, "IMG002": jan5}

	first, errs := BuildPlan(Request{OutputDir: out, Units: units, Dates: dates})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	second, _ := BuildPlan(Request{OutputDir: out, Units: units, Dates: dates})

	if len(first) != len(second) {
		t.Fatalf("plan size differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i].Source < first[i-1].Source {
			t.Errorf("plan not sorted by source: %q before %q", first[i-1].Source, first[i].Source)
		}
	}
}
