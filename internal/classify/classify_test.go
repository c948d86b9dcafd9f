package classify

import "testing"

func TestIsRaw(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"IMG001.CR2", true},
		{"IMG001.cr2", true},
		{"IMG001.NEF", true},
		{"IMG001.arw", true},
		{"IMG001.DNG", true},
		{"IMG001.raw", true},
		{"IMG001.ORF", true},
		{"IMG001.jpg", false},
		{"IMG001.tiff", false},
		{"IMG001", false},
		{"CR2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRaw(tt.name); got != tt.want {
				t.Errorf("IsRaw(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsJPEG(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"IMG001.jpg", true},
		{"IMG001.JPG", true},
		{"IMG001.jpeg", true},
		{"IMG001.Jpeg", true},
		{"IMG001.jpg.xmp", false},
		{"IMG001.cr2", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJPEG(tt.name); got != tt.want {
				t.Errorf("IsJPEG(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSidecarFormat(t *testing.T) {
	tests := []struct {
		name    string
		wantTag string
		wantOK  bool
	}{
		{"IMG001.CR2.xmp", "CR2", true},
		{"IMG001.cr2.xmp", "CR2", true},
		{"IMG020.CR2.jpg", "CR2", true},
		{"IMG001.ORF.dop", "ORF", true},
		{"IMG001.jpg", "", false},
		{"IMG001", "", false},
		{"a.b.c.d", "C", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := SidecarFormat(tt.name)
			if tag != tt.wantTag || ok != tt.wantOK {
				t.Errorf("SidecarFormat(%q) = (%q, %v), want (%q, %v)",
					tt.name, tag, ok, tt.wantTag, tt.wantOK)
			}
		})
	}
}

func TestUnitKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"IMG001.CR2", "IMG001"},
		{"IMG001.CR2.xmp", "IMG001"},
		{"noext", "noext"},
		{".hidden", ""},
	}
	for _, tt := range tests {
		if got := UnitKey(tt.name); got != tt.want {
			t.Errorf("UnitKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRepresentative_PrefersJPEG(t *testing.T) {
	paths := []string{
		"/in/IMG001.CR2",
		"/in/IMG001.jpg",
		"/in/IMG001.CR2.xmp",
	}
	rep, ok := Representative(paths)
	if !ok || rep != "/in/IMG001.jpg" {
		t.Errorf("got (%q, %v), want (/in/IMG001.jpg, true)", rep, ok)
	}
}

func TestRepresentative_FallsBackToRaw(t *testing.T) {
	paths := []string{"/in/IMG001.xmp", "/in/IMG001.CR2"}
	rep, ok := Representative(paths)
	if !ok || rep != "/in/IMG001.CR2" {
		t.Errorf("got (%q, %v), want (/in/IMG001.CR2, true)", rep, ok)
	}
}

func TestRepresentative_LexicalOrderIsDeterministic(t *testing.T) {
	// Two JPEGs in a unit: the lexically smaller basename wins regardless
	// of input order.
	a := []string{"/in/IMG001.jpg", "/in/IMG001.alt.jpg"}
	b := []string{"/in/IMG001.alt.jpg", "/in/IMG001.jpg"}

	repA, _ := Representative(a)
	repB, _ := Representative(b)
	if repA != repB {
		t.Errorf("order-dependent choice: %q vs %q", repA, repB)
	}
	if repA != "/in/IMG001.alt.jpg" {
		t.Errorf("got %q, want lexically first JPEG", repA)
	}
}

func TestRepresentative_NoPhoto(t *testing.T) {
	if _, ok := Representative([]string{"/in/IMG001.xmp"}); ok {
		t.Error("sidecar-only unit should have no representative")
	}
	if _, ok := Representative(nil); ok {
		t.Error("empty unit should have no representative")
	}
}
