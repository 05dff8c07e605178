package utils

import "testing"

func TestParseTargetURL(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"https://example.com", true},
		{"http://example.com/page?x=1", true},
		{"example.com", false},
		{"ftp://example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tc := range tests {
		_, err := ParseTargetURL(tc.raw)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseTargetURL(%q): expected ok=%v, got err=%v", tc.raw, tc.ok, err)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		host, want string
	}{
		{"www.example.com", "www-example-com"},
		{"Example.COM", "example-com"},
		{"localhost:8080", "localhost-8080"},
		{"...", ""},
	}

	for _, tc := range tests {
		if got := Slugify(tc.host); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, expected %q", tc.host, got, tc.want)
		}
	}
}
