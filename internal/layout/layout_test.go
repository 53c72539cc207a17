package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/model"
)

func TestFingerForResolvesBothLayers(t *testing.T) {
	fm := FingerMapFor(QwertyUS)

	assert.Equal(t, 1, fm.FingerFor('a'))
	assert.Equal(t, 1, fm.FingerFor('A'))
	assert.Equal(t, 10, fm.FingerFor(';'))
	assert.Equal(t, 10, fm.FingerFor(':'))
	assert.Equal(t, 5, fm.FingerFor(' '))
	assert.Equal(t, 0, fm.FingerFor('é'))
}

func TestFingerForPerLayout(t *testing.T) {
	cases := []struct {
		id     ID
		r      rune
		finger int
	}{
		{QwertzDE, 'z', 7},
		{QwertzDE, 'ö', 10},
		{AzertyFR, 'a', 1},
		{AzertyFR, 'q', 1},
		{AzertyFR, 'm', 10},
		{Dvorak, 'e', 3},
		{Dvorak, 's', 10},
		{Colemak, 'e', 8},
		{Colemak, 't', 4},
		{QwertyUK, '@', 10},
		{QwertyUK, '\\', 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.finger, FingerFor(tc.r, tc.id), "%s %q", tc.id, tc.r)
	}
}

func TestNeedsShiftDigits(t *testing.T) {
	us := FingerMapFor(QwertyUS)
	fr := FingerMapFor(AzertyFR)

	assert.False(t, us.NeedsShift('1'))
	assert.True(t, us.NeedsShift('!'))
	assert.True(t, us.NeedsShift('A'))
	assert.False(t, us.NeedsShift('a'))

	assert.True(t, fr.NeedsShift('1'))
	assert.False(t, fr.NeedsShift('&'))
	assert.False(t, fr.NeedsShift('²'))
}

func TestFingerMapIsMemoized(t *testing.T) {
	first := FingerMapFor(Dvorak)
	second := FingerMapFor(Dvorak)
	assert.Same(t, first, second)
	assert.Equal(t, Dvorak, first.ID())
}

func TestUnknownLayoutFallsBack(t *testing.T) {
	fm := FingerMapFor(ID("workman"))
	assert.Same(t, FingerMapFor(QwertyUS), fm)
	assert.Equal(t, QwertyUS, Get(ID("workman")).ID)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" Colemak ")
	require.NoError(t, err)
	assert.Equal(t, Colemak, id)

	id, err = ParseID("")
	require.NoError(t, err)
	assert.Equal(t, Default, id)

	_, err = ParseID("workman")
	assert.True(t, errors.Is(err, ErrUnknownLayout))
}

func TestEveryLayoutCoversLetters(t *testing.T) {
	for _, id := range IDs() {
		fm := FingerMapFor(id)
		for r := 'a'; r <= 'z'; r++ {
			assert.NotZerof(t, fm.FingerFor(r), "%s missing %q", id, r)
		}
		assert.NotEmpty(t, Get(id).HomeKeys())
	}
}

func TestFingerNameAndHand(t *testing.T) {
	assert.Equal(t, "leftPinky", FingerName(1))
	assert.Equal(t, "rightThumb", FingerName(6))
	assert.Equal(t, "unknown", FingerName(11))
	assert.Equal(t, model.HandLeft, HandFor(5))
	assert.Equal(t, model.HandRight, HandFor(6))
}
