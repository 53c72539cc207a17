// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadWordsForLang reads a word list and drops words the language filter or
// any of the extra filters rejects.
func LoadWordsForLang(path, lang string, extra ...FilterFunc) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	keep := All(append([]FilterFunc{FilterForLang(lang)}, extra...)...)
	filtered := words[:0]
	for _, w := range words {
		if keep(w) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("word list %s has no usable %s words", path, lang)
	}
	return filtered, nil
}
