package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/layout"
	"github.com/verte-zerg/keydrill/internal/model"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func ev(char rune, ms int, index int, correct bool) model.KeystrokeEvent {
	return model.KeystrokeEvent{
		Char:      char,
		Timestamp: base.Add(time.Duration(ms) * time.Millisecond),
		Index:     index,
		IsCorrect: correct,
	}
}

// correctedLog types "ab cd" with one mistake at index 1 that is fixed
// before moving on.
func correctedLog() []model.KeystrokeEvent {
	return []model.KeystrokeEvent{
		ev('a', 0, 0, true),
		ev('x', 100, 1, false),
		ev('b', 300, 1, true),
		ev(' ', 400, 2, true),
		ev('c', 500, 3, true),
		ev('d', 600, 4, true),
	}
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil, "anything", nil)

	assert.NotNil(t, got.Keystrokes)
	assert.Empty(t, got.Words)
	assert.NotNil(t, got.Words)
	assert.Empty(t, got.Bigrams)
	assert.Empty(t, got.Trigrams)
	assert.Empty(t, got.Fingers)
	assert.Empty(t, got.Characters)
	assert.Empty(t, got.CharacterTypes)
	assert.Equal(t, 100.0, got.Hands.Left.Accuracy)
	assert.Equal(t, 100.0, got.Hands.Right.Accuracy)
	assert.Zero(t, got.TotalTime)
	assert.Zero(t, got.TotalChars)
}

func TestSingleBigram(t *testing.T) {
	log := []model.KeystrokeEvent{ev('a', 0, 0, true), ev('b', 100, 1, true)}
	got := Calculate(log, "ab", nil)

	require.Len(t, got.Bigrams, 1)
	assert.Equal(t, model.BigramAnalysis{
		Bigram:  "ab",
		Chars:   [2]rune{'a', 'b'},
		Count:   1,
		AvgTime: 100,
		Errors:  0,
	}, got.Bigrams[0])
	assert.Empty(t, got.Trigrams)
	assert.Equal(t, 100.0, got.TotalTime)
	assert.Equal(t, 2, got.TotalChars)
}

func TestSingleOccurrenceCharacter(t *testing.T) {
	log := []model.KeystrokeEvent{ev('a', 0, 0, true), ev('b', 100, 1, true)}
	got := Calculate(log, "ab", nil)

	require.Len(t, got.Characters, 2)
	// b has a delay of 100ms and sorts first.
	assert.Equal(t, 'b', got.Characters[0].Char)
	assert.Equal(t, 1, got.Characters[0].Count)
	assert.Equal(t, 100.0, got.Characters[0].AvgDelay)
	assert.Equal(t, 120.0, got.Characters[0].WPM)

	// a has no delay at all and still reports a count of one.
	assert.Equal(t, 'a', got.Characters[1].Char)
	assert.Equal(t, 1, got.Characters[1].Count)
	assert.Zero(t, got.Characters[1].AvgDelay)
	assert.Zero(t, got.Characters[1].WPM)
	assert.Equal(t, []rune{}, got.Characters[1].Mistypes)
}

func TestWordsGroupedAndSorted(t *testing.T) {
	log := []model.KeystrokeEvent{
		ev('h', 0, 0, true), ev('i', 100, 1, true), ev(' ', 200, 2, true),
		ev('h', 300, 3, true), ev('i', 400, 4, true), ev(' ', 500, 5, true),
		ev('y', 600, 6, true), ev('o', 700, 7, true),
	}
	got := Calculate(log, "hi hi yo", nil)

	require.Len(t, got.Words, 2)
	assert.Equal(t, model.WordAnalysis{Word: "hi", Count: 2, AvgTime: 100, WPM: 240, Errors: 0, Accuracy: 1}, got.Words[0])
	assert.Equal(t, model.WordAnalysis{Word: "yo", Count: 1, AvgTime: 100, WPM: 240, Errors: 0, Accuracy: 1}, got.Words[1])
}

func TestWordsWithCorrection(t *testing.T) {
	got := Calculate(correctedLog(), "ab cd", nil)

	require.Len(t, got.Words, 2)
	assert.Equal(t, "cd", got.Words[0].Word)
	assert.Equal(t, 100.0, got.Words[0].AvgTime)

	ab := got.Words[1]
	assert.Equal(t, "ab", ab.Word)
	assert.Equal(t, 300.0, ab.AvgTime)
	assert.Equal(t, 80.0, ab.WPM)
	assert.Equal(t, 1, ab.Errors)
	assert.Equal(t, 0.5, ab.Accuracy)
}

func TestWordAccuracyCountsCorrectedErrors(t *testing.T) {
	log := []model.KeystrokeEvent{
		ev('x', 0, 0, false),
		ev('y', 100, 0, false),
		ev('a', 200, 0, true),
	}
	got := Calculate(log, "a", nil)

	require.Len(t, got.Words, 1)
	assert.Equal(t, "a", got.Words[0].Word)
	assert.Equal(t, 2, got.Words[0].Errors)
	assert.Equal(t, -1.0, got.Words[0].Accuracy)
}

func TestNgramsBrokenByCorrection(t *testing.T) {
	got := Calculate(correctedLog(), "ab cd", nil)

	bigrams := map[string]model.BigramAnalysis{}
	for _, b := range got.Bigrams {
		bigrams[b.Bigram] = b
	}
	require.Len(t, bigrams, 4)
	assert.Equal(t, 1, bigrams["ab"].Errors)
	assert.Equal(t, 100.0, bigrams["ab"].AvgTime)
	assert.Zero(t, bigrams["b "].Errors)
	assert.Equal(t, 100.0, bigrams["b "].AvgTime)

	require.Len(t, got.Trigrams, 2)
	assert.Equal(t, "b c", got.Trigrams[0].Trigram)
	assert.Equal(t, 200.0, got.Trigrams[0].AvgTime)
	assert.Equal(t, " cd", got.Trigrams[1].Trigram)
	assert.Equal(t, [3]rune{' ', 'c', 'd'}, got.Trigrams[1].Chars)
}

func TestFingersAndHands(t *testing.T) {
	got := Calculate(correctedLog(), "ab cd", layout.FingerMapFor(layout.QwertyUS))

	require.Len(t, got.Fingers, 4)
	nums := make([]int, 0, len(got.Fingers))
	for _, f := range got.Fingers {
		nums = append(nums, f.FingerNum)
	}
	// Ties on WPM keep finger order.
	assert.Equal(t, []int{3, 4, 1, 5}, nums)

	index := got.Fingers[1]
	assert.Equal(t, "leftIndex", index.Finger)
	assert.Equal(t, model.HandLeft, index.Hand)
	assert.Equal(t, 2, index.Count)
	assert.Equal(t, 150.0, index.AvgDelay)
	assert.Equal(t, 40.0, index.WPM)
	assert.Equal(t, 1, index.Errors)
	assert.Equal(t, 0.5, index.Accuracy)

	pinky := got.Fingers[2]
	assert.Equal(t, 1, pinky.Count)
	assert.Zero(t, pinky.AvgDelay)
	assert.Equal(t, 20.0, pinky.WPM)

	assert.Equal(t, model.HandStats{Count: 6, WPM: 120, Accuracy: 83}, got.Hands.Left)
	assert.Equal(t, model.HandStats{Count: 0, WPM: 0, Accuracy: 100}, got.Hands.Right)
}

func TestFingersFollowLayout(t *testing.T) {
	log := []model.KeystrokeEvent{ev('a', 0, 0, true), ev('b', 100, 1, true)}

	qwerty := Calculate(log, "ab", layout.FingerMapFor(layout.QwertyUS))
	dvorak := Calculate(log, "ab", layout.FingerMapFor(layout.Dvorak))

	fingerNums := func(fs []model.FingerAnalysis) []int {
		var out []int
		for _, f := range fs {
			out = append(out, f.FingerNum)
		}
		return out
	}
	assert.ElementsMatch(t, []int{1, 4}, fingerNums(qwerty.Fingers))
	assert.ElementsMatch(t, []int{1, 7}, fingerNums(dvorak.Fingers))
	assert.Equal(t, 1, dvorak.Hands.Right.Count)
	assert.Zero(t, qwerty.Hands.Right.Count)
}

func TestCharactersAndTypes(t *testing.T) {
	got := Calculate(correctedLog(), "ab cd", nil)

	chars := make([]rune, 0, len(got.Characters))
	for _, c := range got.Characters {
		chars = append(chars, c.Char)
	}
	assert.Equal(t, []rune{'b', ' ', 'c', 'd', 'a'}, chars)

	b := got.Characters[0]
	assert.Equal(t, 2, b.Count)
	assert.Equal(t, 150.0, b.AvgDelay)
	assert.Equal(t, 80.0, b.WPM)
	assert.Equal(t, 1, b.Errors)
	assert.Equal(t, []rune{'x'}, b.Mistypes)

	require.Len(t, got.CharacterTypes, 2)
	lower := got.CharacterTypes[0]
	assert.Equal(t, model.CharLowercase, lower.Type)
	assert.Equal(t, "Lowercase", lower.Label)
	assert.Equal(t, 4, lower.Count)
	assert.Equal(t, 125.0, lower.AvgDelay)
	assert.Equal(t, 96.0, lower.WPM)
	assert.Equal(t, []rune{'a', 'b', 'c', 'd'}, lower.Chars)

	space := got.CharacterTypes[1]
	assert.Equal(t, model.CharWhitespace, space.Type)
	assert.Equal(t, []rune{' '}, space.Chars)
	assert.Equal(t, 120.0, space.WPM)
}

func TestCharacterTypeOf(t *testing.T) {
	cases := map[rune]model.CharacterType{
		'q':  model.CharLowercase,
		'Q':  model.CharUppercase,
		'7':  model.CharNumbers,
		' ':  model.CharWhitespace,
		'\t': model.CharWhitespace,
		',':  model.CharPunctuation,
		'ß':  model.CharPunctuation,
		'É':  model.CharPunctuation,
	}
	for r, want := range cases {
		assert.Equal(t, want, CharacterTypeOf(r), "rune %q", r)
	}
}

func TestOutOfRangeIndexSkipped(t *testing.T) {
	log := []model.KeystrokeEvent{
		ev('a', 0, 0, true),
		ev('b', 100, 1, true),
		ev('z', 200, 9, false),
		ev('z', 300, -1, false),
	}
	got := Calculate(log, "ab", nil)

	assert.Equal(t, 4, got.TotalChars)
	assert.Len(t, got.Characters, 2)
	assert.Len(t, got.Bigrams, 1)
	var fingerChars int
	for _, f := range got.Fingers {
		fingerChars += f.Count
	}
	assert.Equal(t, 2, fingerChars)
}

func TestNegativeIntervalsClamp(t *testing.T) {
	log := []model.KeystrokeEvent{ev('a', 200, 0, true), ev('b', 100, 1, true)}
	got := Calculate(log, "ab", nil)

	assert.Zero(t, got.TotalTime)
	require.Len(t, got.Bigrams, 1)
	assert.Zero(t, got.Bigrams[0].AvgTime)
	for _, f := range got.Fingers {
		assert.Zero(t, f.WPM)
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	log := correctedLog()
	snapshot := append([]model.KeystrokeEvent(nil), log...)

	got := Calculate(log, "ab cd", nil)
	got.Keystrokes[0].Char = 'Z'

	assert.Equal(t, snapshot, log)
}
