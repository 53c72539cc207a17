package layout

// Fingers: 1 left pinky .. 5 left thumb, 6 right thumb .. 10 right pinky.

func k(base, shift rune, finger int) Key {
	return Key{Base: base, Shift: shift, Finger: finger}
}

func h(base, shift rune, finger int) Key {
	return Key{Base: base, Shift: shift, Finger: finger, Home: true}
}

var spaceRow = []Key{{Base: ' ', Finger: 5}}

var qwertyUS = Layout{
	ID:     QwertyUS,
	Name:   "QWERTY (US)",
	Locale: "en-US",
	Rows: [][]Key{
		{k('`', '~', 1), k('1', '!', 1), k('2', '@', 2), k('3', '#', 3), k('4', '$', 4), k('5', '%', 4),
			k('6', '^', 7), k('7', '&', 7), k('8', '*', 8), k('9', '(', 9), k('0', ')', 10), k('-', '_', 10), k('=', '+', 10)},
		{k('q', 'Q', 1), k('w', 'W', 2), k('e', 'E', 3), k('r', 'R', 4), k('t', 'T', 4),
			k('y', 'Y', 7), k('u', 'U', 7), k('i', 'I', 8), k('o', 'O', 9), k('p', 'P', 10), k('[', '{', 10), k(']', '}', 10), k('\\', '|', 10)},
		{h('a', 'A', 1), h('s', 'S', 2), h('d', 'D', 3), h('f', 'F', 4), k('g', 'G', 4),
			k('h', 'H', 7), h('j', 'J', 7), h('k', 'K', 8), h('l', 'L', 9), h(';', ':', 10), k('\'', '"', 10)},
		{k('z', 'Z', 1), k('x', 'X', 2), k('c', 'C', 3), k('v', 'V', 4), k('b', 'B', 4),
			k('n', 'N', 7), k('m', 'M', 7), k(',', '<', 8), k('.', '>', 9), k('/', '?', 10)},
		spaceRow,
	},
}

var qwertyUK = Layout{
	ID:     QwertyUK,
	Name:   "QWERTY (UK)",
	Locale: "en-GB",
	Rows: [][]Key{
		{k('`', '¬', 1), k('1', '!', 1), k('2', '"', 2), k('3', '£', 3), k('4', '$', 4), k('5', '%', 4),
			k('6', '^', 7), k('7', '&', 7), k('8', '*', 8), k('9', '(', 9), k('0', ')', 10), k('-', '_', 10), k('=', '+', 10)},
		{k('q', 'Q', 1), k('w', 'W', 2), k('e', 'E', 3), k('r', 'R', 4), k('t', 'T', 4),
			k('y', 'Y', 7), k('u', 'U', 7), k('i', 'I', 8), k('o', 'O', 9), k('p', 'P', 10), k('[', '{', 10), k(']', '}', 10)},
		{h('a', 'A', 1), h('s', 'S', 2), h('d', 'D', 3), h('f', 'F', 4), k('g', 'G', 4),
			k('h', 'H', 7), h('j', 'J', 7), h('k', 'K', 8), h('l', 'L', 9), h(';', ':', 10), k('\'', '@', 10), k('#', '~', 10)},
		{k('\\', '|', 1), k('z', 'Z', 1), k('x', 'X', 2), k('c', 'C', 3), k('v', 'V', 4), k('b', 'B', 4),
			k('n', 'N', 7), k('m', 'M', 7), k(',', '<', 8), k('.', '>', 9), k('/', '?', 10)},
		spaceRow,
	},
}

var qwertzDE = Layout{
	ID:     QwertzDE,
	Name:   "QWERTZ (German)",
	Locale: "de-DE",
	Rows: [][]Key{
		{k('^', '°', 1), k('1', '!', 1), k('2', '"', 2), k('3', '§', 3), k('4', '$', 4), k('5', '%', 4),
			k('6', '&', 7), k('7', '/', 7), k('8', '(', 8), k('9', ')', 9), k('0', '=', 10), k('ß', '?', 10), k('´', '`', 10)},
		{k('q', 'Q', 1), k('w', 'W', 2), k('e', 'E', 3), k('r', 'R', 4), k('t', 'T', 4),
			k('z', 'Z', 7), k('u', 'U', 7), k('i', 'I', 8), k('o', 'O', 9), k('p', 'P', 10), k('ü', 'Ü', 10), k('+', '*', 10)},
		{h('a', 'A', 1), h('s', 'S', 2), h('d', 'D', 3), h('f', 'F', 4), k('g', 'G', 4),
			k('h', 'H', 7), h('j', 'J', 7), h('k', 'K', 8), h('l', 'L', 9), h('ö', 'Ö', 10), k('ä', 'Ä', 10), k('#', '\'', 10)},
		{k('<', '>', 1), k('y', 'Y', 1), k('x', 'X', 2), k('c', 'C', 3), k('v', 'V', 4), k('b', 'B', 4),
			k('n', 'N', 7), k('m', 'M', 7), k(',', ';', 8), k('.', ':', 9), k('-', '_', 10)},
		spaceRow,
	},
}

// AZERTY puts digits on the shifted layer of the number row.
var azertyFR = Layout{
	ID:     AzertyFR,
	Name:   "AZERTY (French)",
	Locale: "fr-FR",
	Rows: [][]Key{
		{k('²', 0, 1), k('&', '1', 1), k('é', '2', 2), k('"', '3', 3), k('\'', '4', 4), k('(', '5', 4),
			k('-', '6', 7), k('è', '7', 7), k('_', '8', 8), k('ç', '9', 9), k('à', '0', 10), k(')', '°', 10), k('=', '+', 10)},
		{k('a', 'A', 1), k('z', 'Z', 2), k('e', 'E', 3), k('r', 'R', 4), k('t', 'T', 4),
			k('y', 'Y', 7), k('u', 'U', 7), k('i', 'I', 8), k('o', 'O', 9), k('p', 'P', 10), k('^', '¨', 10), k('$', '£', 10)},
		{h('q', 'Q', 1), h('s', 'S', 2), h('d', 'D', 3), h('f', 'F', 4), k('g', 'G', 4),
			k('h', 'H', 7), h('j', 'J', 7), h('k', 'K', 8), h('l', 'L', 9), h('m', 'M', 10), k('ù', '%', 10), k('*', 'µ', 10)},
		{k('<', '>', 1), k('w', 'W', 1), k('x', 'X', 2), k('c', 'C', 3), k('v', 'V', 4), k('b', 'B', 4),
			k('n', 'N', 7), k(',', '?', 8), k(';', '.', 9), k(':', '/', 10), k('!', '§', 10)},
		spaceRow,
	},
}

var dvorak = Layout{
	ID:     Dvorak,
	Name:   "Dvorak",
	Locale: "en-US",
	Rows: [][]Key{
		{k('`', '~', 1), k('1', '!', 1), k('2', '@', 2), k('3', '#', 3), k('4', '$', 4), k('5', '%', 4),
			k('6', '^', 7), k('7', '&', 7), k('8', '*', 8), k('9', '(', 9), k('0', ')', 10), k('[', '{', 10), k(']', '}', 10)},
		{k('\'', '"', 1), k(',', '<', 2), k('.', '>', 3), k('p', 'P', 4), k('y', 'Y', 4),
			k('f', 'F', 7), k('g', 'G', 7), k('c', 'C', 8), k('r', 'R', 9), k('l', 'L', 10), k('/', '?', 10), k('=', '+', 10), k('\\', '|', 10)},
		{h('a', 'A', 1), h('o', 'O', 2), h('e', 'E', 3), h('u', 'U', 4), k('i', 'I', 4),
			k('d', 'D', 7), h('h', 'H', 7), h('t', 'T', 8), h('n', 'N', 9), h('s', 'S', 10), k('-', '_', 10)},
		{k(';', ':', 1), k('q', 'Q', 2), k('j', 'J', 3), k('k', 'K', 4), k('x', 'X', 4),
			k('b', 'B', 7), k('m', 'M', 7), k('w', 'W', 8), k('v', 'V', 9), k('z', 'Z', 10)},
		spaceRow,
	},
}

var colemak = Layout{
	ID:     Colemak,
	Name:   "Colemak",
	Locale: "en-US",
	Rows: [][]Key{
		{k('`', '~', 1), k('1', '!', 1), k('2', '@', 2), k('3', '#', 3), k('4', '$', 4), k('5', '%', 4),
			k('6', '^', 7), k('7', '&', 7), k('8', '*', 8), k('9', '(', 9), k('0', ')', 10), k('-', '_', 10), k('=', '+', 10)},
		{k('q', 'Q', 1), k('w', 'W', 2), k('f', 'F', 3), k('p', 'P', 4), k('g', 'G', 4),
			k('j', 'J', 7), k('l', 'L', 7), k('u', 'U', 8), k('y', 'Y', 9), k(';', ':', 10), k('[', '{', 10), k(']', '}', 10), k('\\', '|', 10)},
		{h('a', 'A', 1), h('r', 'R', 2), h('s', 'S', 3), h('t', 'T', 4), k('d', 'D', 4),
			k('h', 'H', 7), h('n', 'N', 7), h('e', 'E', 8), h('i', 'I', 9), h('o', 'O', 10), k('\'', '"', 10)},
		{k('z', 'Z', 1), k('x', 'X', 2), k('c', 'C', 3), k('v', 'V', 4), k('b', 'B', 4),
			k('k', 'K', 7), k('m', 'M', 7), k(',', '<', 8), k('.', '>', 9), k('/', '?', 10)},
		spaceRow,
	},
}
