package wordlist

import "testing"

func TestBuiltinPassesEnglishFilter(t *testing.T) {
	words := Builtin()
	if len(words) < 100 {
		t.Fatalf("expected a usable builtin list, got %d words", len(words))
	}
	filter := FilterForLang("en")
	for _, w := range words {
		if !filter(w) {
			t.Fatalf("builtin word %q rejected by english filter", w)
		}
	}
}
