package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWordsForLang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("home\n\n  row \nnaïve\nco-op\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := LoadWordsForLang(path, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "home" || words[1] != "row" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("résumé\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	if _, err := LoadWordsForLang(path, "en"); err == nil {
		t.Fatalf("expected error when every word is filtered out")
	}
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
