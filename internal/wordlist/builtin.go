package wordlist

import (
	_ "embed"
	"strings"
)

//go:embed builtin_en.txt
var builtinEnglish string

// Builtin returns the bundled English list, used when no list file exists.
func Builtin() []string {
	return strings.Fields(builtinEnglish)
}
