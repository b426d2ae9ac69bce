package validation

import "testing"

func TestValidateCategoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{name: "react", path: "react", ok: true},
		{name: "with number and hyphen", path: "web-3", ok: true},
		{name: "single character", path: "x", ok: true},
		{name: "maximum length", path: "abcdefghijklmnopqrstuvwxyz012345", ok: true},
		{name: "too long", path: "abcdefghijklmnopqrstuvwxyz0123456", ok: false},
		{name: "empty", path: "", ok: false},
		{name: "uppercase", path: "React", ok: false},
		{name: "space", path: "re act", ok: false},
		{name: "slash", path: "re/act", ok: false},
		{name: "leading hyphen", path: "-react", ok: false},
		{name: "trailing hyphen", path: "react-", ok: false},
		{name: "reserved posts", path: "posts", ok: false},
		{name: "reserved comments", path: "comments", ok: false},
		{name: "reserved categories", path: "categories", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCategoryPath(tc.path)
			if tc.ok && err != nil {
				t.Fatalf("expected valid path, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid path, got nil error")
			}
		})
	}
}
