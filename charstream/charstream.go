// Package charstream implements the character iterator the scanner drives:
// a decoded rune stream over a single in-memory input with 1-based
// line/column tracking and a single save/restore checkpoint slot.
package charstream

import (
	"unicode/utf8"

	"github.com/llxrt/llxrt/grammar"
)

// Item is one decoded character together with the byte offset it starts at
// and its 1-based line/column position.
type Item struct {
	Ch     rune
	Offset int
	Pos    grammar.Position
}

// Iterator walks a []byte input one rune at a time. It keeps exactly one
// save slot; a second Save overwrites the first, matching the match
// finder's single-checkpoint usage (see scancore).
type Iterator struct {
	input []byte
	pos   int
	line  int
	col   int

	savedPos  int
	savedLine int
	savedCol  int
}

// New creates an Iterator positioned at the start of input.
func New(input []byte) *Iterator {
	return &Iterator{input: input, line: 1, col: 1}
}

// Len returns the number of bytes in the underlying input.
func (it *Iterator) Len() int {
	return len(it.input)
}

// Peek returns the character at the current offset without advancing.
func (it *Iterator) Peek() (Item, bool) {
	if it.pos >= len(it.input) {
		return Item{}, false
	}

	ch, _ := utf8.DecodeRune(it.input[it.pos:])
	return Item{Ch: ch, Offset: it.pos, Pos: grammar.Position{Line: it.line, Col: it.col}}, true
}

// Next returns the character at the current offset, then advances past it,
// updating line/column: a newline moves to the next line at column 1,
// any other character just advances the column.
func (it *Iterator) Next() (Item, bool) {
	item, ok := it.Peek()
	if !ok {
		return item, false
	}

	size := utf8.RuneLen(item.Ch)
	if size < 1 {
		size = 1
	}
	it.pos += size
	if item.Ch == '\n' {
		it.line++
		it.col = 1
	} else {
		it.col++
	}
	return item, true
}

// Save snapshots (offset, line, col) into the single save slot, overwriting
// whatever was saved before.
func (it *Iterator) Save() {
	it.savedPos = it.pos
	it.savedLine = it.line
	it.savedCol = it.col
}

// Restore returns the iterator to the last saved position.
func (it *Iterator) Restore() {
	it.pos = it.savedPos
	it.line = it.savedLine
	it.col = it.savedCol
}

// Mark captures the iterator's current position as an independent value,
// unrelated to the Save/Restore slot: two callers holding their own Marks
// can rewind past each other without clobbering one another's checkpoint,
// which the single Save/Restore slot cannot guarantee when nested.
type Mark struct {
	pos, line, col int
}

// Mark returns a snapshot of the current position.
func (it *Iterator) Mark() Mark {
	return Mark{pos: it.pos, line: it.line, col: it.col}
}

// Seek returns the iterator to a previously captured Mark.
func (it *Iterator) Seek(m Mark) {
	it.pos = m.pos
	it.line = m.line
	it.col = m.col
}

// Pos returns the iterator's current position without consuming anything.
func (it *Iterator) Pos() grammar.Position {
	return grammar.Position{Line: it.line, Col: it.col}
}

// Offset returns the iterator's current byte offset.
func (it *Iterator) Offset() int {
	return it.pos
}
