package model

// Hand identifies a side of the keyboard.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// CharacterType is a coarse character class.
type CharacterType string

const (
	CharLowercase   CharacterType = "lowercase"
	CharUppercase   CharacterType = "uppercase"
	CharNumbers     CharacterType = "numbers"
	CharPunctuation CharacterType = "punctuation"
	CharWhitespace  CharacterType = "whitespace"
)

// WordAnalysis aggregates occurrences of one word.
// AvgTime is in milliseconds.
type WordAnalysis struct {
	Word     string  `json:"word"`
	Count    int     `json:"count"`
	AvgTime  float64 `json:"avgTime"`
	WPM      float64 `json:"wpm"`
	Errors   int     `json:"errors"`
	Accuracy float64 `json:"accuracy"`
}

// BigramAnalysis aggregates a two-character transition.
type BigramAnalysis struct {
	Bigram  string  `json:"bigram"`
	Chars   [2]rune `json:"chars"`
	Count   int     `json:"count"`
	AvgTime float64 `json:"avgTime"`
	Errors  int     `json:"errors"`
}

// TrigramAnalysis aggregates a three-character sequence.
type TrigramAnalysis struct {
	Trigram string  `json:"trigram"`
	Chars   [3]rune `json:"chars"`
	Count   int     `json:"count"`
	AvgTime float64 `json:"avgTime"`
	Errors  int     `json:"errors"`
}

// FingerAnalysis aggregates keystrokes attributed to one finger.
type FingerAnalysis struct {
	Finger    string  `json:"finger"`
	FingerNum int     `json:"fingerNum"`
	Hand      Hand    `json:"hand"`
	Count     int     `json:"count"`
	AvgDelay  float64 `json:"avgDelay"`
	WPM       float64 `json:"wpm"`
	Errors    int     `json:"errors"`
	Accuracy  float64 `json:"accuracy"`
}

// HandStats holds one side of a HandAnalysis. Accuracy is a percentage.
type HandStats struct {
	Count    int     `json:"count"`
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
}

// HandAnalysis splits keystrokes by hand.
type HandAnalysis struct {
	Left  HandStats `json:"left"`
	Right HandStats `json:"right"`
}

// CharacterAnalysis aggregates keystrokes for one expected character.
type CharacterAnalysis struct {
	Char     rune    `json:"char"`
	Count    int     `json:"count"`
	AvgDelay float64 `json:"avgDelay"`
	WPM      float64 `json:"wpm"`
	Errors   int     `json:"errors"`
	Mistypes []rune  `json:"mistypes"`
}

// CharacterTypeAnalysis aggregates keystrokes for one character class.
type CharacterTypeAnalysis struct {
	Type     CharacterType `json:"type"`
	Label    string        `json:"label"`
	Count    int           `json:"count"`
	AvgDelay float64       `json:"avgDelay"`
	WPM      float64       `json:"wpm"`
	Chars    []rune        `json:"chars"`
}

// TypingAnalytics is the full breakdown of a keystroke log.
// TotalTime is in milliseconds.
type TypingAnalytics struct {
	Keystrokes     []KeystrokeEvent        `json:"keystrokes"`
	Words          []WordAnalysis          `json:"words"`
	Bigrams        []BigramAnalysis        `json:"bigrams"`
	Trigrams       []TrigramAnalysis       `json:"trigrams"`
	Fingers        []FingerAnalysis        `json:"fingers"`
	Hands          HandAnalysis            `json:"hands"`
	Characters     []CharacterAnalysis     `json:"characters"`
	CharacterTypes []CharacterTypeAnalysis `json:"characterTypes"`
	TotalTime      float64                 `json:"totalTime"`
	TotalChars     int                     `json:"totalChars"`
}
