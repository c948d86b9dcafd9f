package probe

import (
	"fmt"

	exiftool "github.com/barasher/go-exiftool"
)

// Fields is the raw metadata map for one file, as reported by exiftool.
// Values are strings, numbers, or nil depending on the tag.
type Fields map[string]interface{}

// String returns the named field as a string. Non-string values and
// missing fields report false.
func (f Fields) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Resolver is the metadata-extraction capability injected into the
// pipeline. Close releases any underlying subprocess.
type Resolver interface {
	Extract(path string) (Fields, error)
	Close()
}

// ExiftoolResolver resolves metadata through a long-running exiftool
// process (stay_open mode). Not safe for concurrent use; open one per
// worker.
type ExiftoolResolver struct {
	et *exiftool.Exiftool
}

// NewExiftoolResolver starts an exiftool handle. The caller must Close it.
func NewExiftoolResolver() (*ExiftoolResolver, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExiftoolResolver{et: et}, nil
}

// Extract returns the metadata fields for path.
func (r *ExiftoolResolver) Extract(path string) (Fields, error) {
	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return nil, fmt.Errorf("exiftool %q: no output", path)
	}
	if metas[0].Err != nil {
		return nil, fmt.Errorf("exiftool %q: %w", path, metas[0].Err)
	}
	return Fields(metas[0].Fields), nil
}

// Close terminates the exiftool subprocess.
func (r *ExiftoolResolver) Close() {
	r.et.Close()
}
