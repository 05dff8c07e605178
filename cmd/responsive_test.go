package cmd

import (
	"reflect"
	"testing"

	"github.com/quayle-dev/cssprobe/pkg/viewport"
)

func TestParseWidths(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    []int
		wantErr bool
	}{
		{"empty uses defaults", "", viewport.DefaultWidths, false},
		{"plain list", "375,768", []int{375, 768}, false},
		{"spaces trimmed", "375, 768", []int{375, 768}, false},
		{"sorted", "1280,375", []int{375, 1280}, false},
		{"garbage", "375,wide", nil, true},
		{"negative", "-375", nil, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseWidths(tc.flag)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.flag)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWidths(%q): %v", tc.flag, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseWidths(%q) = %v, want %v", tc.flag, got, tc.want)
			}
		})
	}
}

func TestWidthsKeyCanonical(t *testing.T) {
	// Equivalent spellings of the flag must produce the same cache key input.
	variants := []string{"375,768", "375, 768", "768,375", " 375 ,768"}

	var first string
	for _, flag := range variants {
		widths, err := parseWidths(flag)
		if err != nil {
			t.Fatalf("parseWidths(%q): %v", flag, err)
		}
		key := widthsKey(widths)
		if first == "" {
			first = key
			continue
		}
		if key != first {
			t.Fatalf("flag %q keyed as %q, want %q", flag, key, first)
		}
	}
	if first != "375,768" {
		t.Fatalf("unexpected canonical key %q", first)
	}
}
