package storage

import (
	"strings"
	"testing"
)

func TestContentIDDeterministic(t *testing.T) {
	inputs := []string{
		"https://example.com/a",
		"some raw text body",
		"A Podcast Title",
		"",
	}
	for _, in := range inputs {
		first := ContentID(in)
		second := ContentID(in)
		if first != second {
			t.Errorf("ContentID(%q) not deterministic: %s vs %s", in, first, second)
		}
		if len(first) != 6 {
			t.Errorf("ContentID(%q) length = %d, want 6", in, len(first))
		}
	}
}

func TestContentIDDistinctInputs(t *testing.T) {
	a := ContentID("https://example.com/a")
	b := ContentID("https://example.com/b")
	if a == b {
		t.Errorf("different URLs hashed to the same ID %s", a)
	}
}

func TestContentIDURLSafe(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_="
	for _, in := range []string{"https://example.com/a?q=1&r=2", "text with spaces", "日本語"} {
		id := ContentID(in)
		for _, c := range id {
			if !strings.ContainsRune(alphabet, c) {
				t.Errorf("ContentID(%q) = %s contains non-URL-safe character %q", in, id, c)
			}
		}
	}
}
