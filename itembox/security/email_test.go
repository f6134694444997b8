package security

import (
	"errors"
	"itembox/itembox/utils/apperrors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"alice@example.com":        "alice@example.com",
		"  Alice@Example.COM ":     "alice@example.com",
		"bob.smith+tag@mail.co.uk": "bob.smith+tag@mail.co.uk",
	}
	for in, want := range valid {
		got, err := NormalizeEmail(in)
		if err != nil {
			t.Fatalf("NormalizeEmail(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{
		"",
		"alice",
		"alice@",
		"@example.com",
		"alice@localhost",
		"alice@example.",
		"Alice <alice@example.com>",
		"alice@@example.com",
		"a/b@example.com",
		`"a\\b"@example.com`,
	}
	for _, in := range invalid {
		_, err := NormalizeEmail(in)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("NormalizeEmail(%q) expected validation error, got %v", in, err)
		}
	}
}
