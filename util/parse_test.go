package util

import (
	"errors"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"2GB", 2 * 1024 * 1024 * 1024},
		{"1024", 1024},
		{"64B", 64},
		{"  10MB  ", 10 * 1024 * 1024},
		{"10mb", 10 * 1024 * 1024},
		{"1 MB", 1024 * 1024},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, 0); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSize_Default(t *testing.T) {
	defaultVal := int64(5 * 1024 * 1024)
	for _, input := range []string{"", "invalid", "-1MB", "1.5MB"} {
		if got := ParseSize(input, defaultVal); got != defaultVal {
			t.Errorf("ParseSize(%q): expected default %d, got %d", input, defaultVal, got)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	for _, input := range []string{"", "0", "-3", "abc", "1.5", "99999999999999999999"} {
		if _, err := ParseID(input); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q): expected ErrInvalidID, got %v", input, err)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input  string
		prefix int
		want   string
	}{
		{"YourSuperSecretKey", 4, "Your***"},
		{"short", 10, "***"},
		{"exactly10!", 10, "***"},
		{"", 5, "***"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := MaskSecret(tc.input, tc.prefix); got != tc.want {
				t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.input, tc.prefix, got, tc.want)
			}
		})
	}
}

func TestMaskDSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"postgres://app:s3cret@db:5432/social", "postgres://app:***@db:5432/social"},
		{"postgres://app:p%40ss@db:5432/social?sslmode=disable", "postgres://app:***@db:5432/social?sslmode=disable"},
		{"postgres://app@db:5432/social", "postgres://app@db:5432/social"},
		{"host=db user=app password=s3cret dbname=social", "host=db user=app password=*** dbname=social"},
		{"app:s3cret@tcp(db:3306)/social?parseTime=true", "app:***@tcp(db:3306)/social?parseTime=true"},
		{"file:socialfeed.db?_foreign_keys=on", "file:socialfeed.db?_foreign_keys=on"},
	}
	for _, tc := range tests {
		if got := MaskDSN(tc.input); got != tc.want {
			t.Errorf("MaskDSN(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
