// Package layout provides keyboard layouts and finger assignments.
package layout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/verte-zerg/keydrill/internal/model"
)

// ErrUnknownLayout is returned by ParseID for unsupported layout names.
var ErrUnknownLayout = errors.New("unknown keyboard layout")

// ID names a concrete keyboard layout.
type ID string

const (
	QwertyUS ID = "qwerty-us"
	QwertyUK ID = "qwerty-uk"
	QwertzDE ID = "qwerty-de"
	AzertyFR ID = "azerty-fr"
	Dvorak   ID = "dvorak"
	Colemak  ID = "colemak"
)

// Default is used when a layout is not specified or not known.
const Default = QwertyUS

// Key is one physical key. A zero Shift means the key has no shifted character.
type Key struct {
	Base   rune
	Shift  rune
	Finger int
	Home   bool
}

// Layout describes the character rows of a keyboard.
type Layout struct {
	ID     ID
	Name   string
	Locale string
	Rows   [][]Key
}

var layouts = map[ID]*Layout{
	QwertyUS: &qwertyUS,
	QwertyUK: &qwertyUK,
	QwertzDE: &qwertzDE,
	AzertyFR: &azertyFR,
	Dvorak:   &dvorak,
	Colemak:  &colemak,
}

var order = []ID{QwertyUS, QwertyUK, QwertzDE, AzertyFR, Dvorak, Colemak}

// IDs lists the supported layouts in display order.
func IDs() []ID {
	return append([]ID(nil), order...)
}

// ParseID validates a layout name. An empty name selects Default.
func ParseID(name string) (ID, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return Default, nil
	}
	id := ID(name)
	if _, ok := layouts[id]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownLayout, name)
	}
	return id, nil
}

// Get returns the layout for id, falling back to Default.
func Get(id ID) *Layout {
	if l, ok := layouts[id]; ok {
		return l
	}
	return layouts[Default]
}

// HomeKeys returns the unshifted home-row characters of the layout.
func (l *Layout) HomeKeys() []rune {
	var out []rune
	for _, row := range l.Rows {
		for _, key := range row {
			if key.Home {
				out = append(out, key.Base)
			}
		}
	}
	return out
}

// FingerMap resolves characters of one layout to fingers.
type FingerMap struct {
	id      ID
	fingers map[rune]int
	shifted map[rune]struct{}
}

var (
	cacheMu sync.Mutex
	cache   = map[ID]*FingerMap{}
)

// FingerMapFor returns the memoized finger map for id.
// Unknown ids resolve to the Default layout.
func FingerMapFor(id ID) *FingerMap {
	l := Get(id)
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if fm, ok := cache[l.ID]; ok {
		return fm
	}
	fm := build(l)
	cache[l.ID] = fm
	return fm
}

func build(l *Layout) *FingerMap {
	fm := &FingerMap{
		id:      l.ID,
		fingers: map[rune]int{},
		shifted: map[rune]struct{}{},
	}
	for _, row := range l.Rows {
		for _, key := range row {
			if key.Finger == 0 {
				continue
			}
			fm.fingers[key.Base] = key.Finger
			if key.Shift != 0 {
				fm.fingers[key.Shift] = key.Finger
				fm.shifted[key.Shift] = struct{}{}
			}
		}
	}
	return fm
}

// ID returns the layout this map was built from.
func (m *FingerMap) ID() ID {
	return m.id
}

// FingerFor returns the finger number for r, or 0 when the layout has no key for it.
func (m *FingerMap) FingerFor(r rune) int {
	if f, ok := m.fingers[r]; ok {
		return f
	}
	return m.fingers[unicode.ToLower(r)]
}

// NeedsShift reports whether r is produced by the shifted layer of some key.
func (m *FingerMap) NeedsShift(r rune) bool {
	_, ok := m.shifted[r]
	return ok
}

// FingerFor is a one-off lookup of r in layout id.
func FingerFor(r rune, id ID) int {
	return FingerMapFor(id).FingerFor(r)
}

var fingerNames = [...]string{
	"",
	"leftPinky", "leftRing", "leftMiddle", "leftIndex", "leftThumb",
	"rightThumb", "rightIndex", "rightMiddle", "rightRing", "rightPinky",
}

// FingerName returns the camel-case name of finger n, or "unknown".
func FingerName(n int) string {
	if n < 1 || n >= len(fingerNames) {
		return "unknown"
	}
	return fingerNames[n]
}

// HandFor maps a finger number to its hand.
func HandFor(n int) model.Hand {
	if n <= 5 {
		return model.HandLeft
	}
	return model.HandRight
}
