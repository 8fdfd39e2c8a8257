package descriptor

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "/"},
		{"/", "/"},
		{"/app", "/app"},
		{"/app/", "/app"},
		{"/app//", "/app"},
		{"/api/users/", "/api/users"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidKind(t *testing.T) {
	for _, kind := range ValidKinds() {
		if !IsValidKind(kind) {
			t.Errorf("IsValidKind(%q) should be true", kind)
		}
	}
	for _, kind := range []string{"", "php", "docker", "Static"} {
		if IsValidKind(kind) {
			t.Errorf("IsValidKind(%q) should be false", kind)
		}
	}
}

func TestNormalizedPath(t *testing.T) {
	d := Descriptor{Domain: "example.com", PathPrefix: "/blog/"}
	if got := d.NormalizedPath(); got != "/blog" {
		t.Errorf("NormalizedPath() = %q, want %q", got, "/blog")
	}

	empty := Descriptor{Domain: "example.com"}
	if got := empty.NormalizedPath(); got != "/" {
		t.Errorf("NormalizedPath() = %q, want %q", got, "/")
	}
}
