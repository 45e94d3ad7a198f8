package scanner

import (
	"math"

	"github.com/llxrt/llxrt/charstream"
	"github.com/llxrt/llxrt/grammar"
)

// Classify maps a decoded character to a character-class index. An absent
// result means no DFA transition is possible from the current state.
type Classify func(rune) (int, bool)

// findNext drives dfa over it starting at the current position, returning
// the longest accepting match, breaking ties by priority. Returns false if
// no accept was ever reached; the iterator is restored to its entry
// position in that case.
func findNext(it *charstream.Iterator, dfa grammar.DFA, classify Classify) (grammar.Match, bool) {
	entry := it.Mark()

	state := 0
	started := false
	var startItem charstream.Item
	var startOffset int

	haveBest := false
	bestLen := 0
	bestPriority := math.MaxInt
	var bestTokenType int
	var bestLastItem charstream.Item
	var bestEndOffset int
	var bestMark charstream.Mark

	for {
		peeked, ok := it.Peek()
		if !ok {
			break
		}

		classIdx, ok := classify(peeked.Ch)
		if !ok {
			break
		}

		if classIdx < 0 || classIdx >= len(dfa[state].Transitions) {
			break
		}

		tr := dfa[state].Transitions[classIdx]
		if !tr.Valid {
			break
		}

		state = tr.Target
		consumed, _ := it.Next()
		if !started {
			started = true
			startItem = consumed
			startOffset = consumed.Offset
		}

		for _, accept := range dfa[state].Accepts {
			satisfied := lookaheadSatisfied(it, accept.Lookahead, classify)
			if !satisfied {
				continue
			}

			curLen := it.Offset() - startOffset
			if betterCandidate(curLen, bestLen, accept.Priority, bestPriority, haveBest) {
				haveBest = true
				bestLen = curLen
				bestPriority = accept.Priority
				bestTokenType = accept.TokenType
				bestLastItem = consumed
				bestEndOffset = it.Offset()
				bestMark = it.Mark()
			}
			break
		}
	}

	if !haveBest {
		it.Seek(entry)
		return grammar.Match{}, false
	}

	it.Seek(bestMark)
	endPos := advancePosition(bestLastItem)
	match := grammar.Match{
		Span:      grammar.Span{Start: startOffset, End: bestEndOffset},
		TokenType: bestTokenType,
		Positions: grammar.Positions{Start: startItem.Pos, End: endPos},
	}
	return match, true
}

// betterCandidate reports whether a candidate wins over the running best:
// there is no best yet, it is strictly longer, or it ties in length with a
// strictly lower (better) priority.
func betterCandidate(curLen, bestLen, priority, bestPriority int, haveBest bool) bool {
	if !haveBest {
		return true
	}
	if curLen > bestLen {
		return true
	}
	return curLen == bestLen && priority < bestPriority
}

// advancePosition computes the position immediately after the given
// character item: a newline moves to the next line at column 1, otherwise
// the column advances by one.
func advancePosition(last charstream.Item) grammar.Position {
	if last.Ch == '\n' {
		return grammar.Position{Line: last.Pos.Line + 1, Col: 1}
	}
	return grammar.Position{Line: last.Pos.Line, Col: last.Pos.Col + 1}
}

func lookaheadSatisfied(it *charstream.Iterator, la grammar.Lookahead, classify Classify) bool {
	switch la.Kind {
	case grammar.NoLookahead:
		return true
	case grammar.PositiveLookahead:
		return checkLookahead(it, *la.Sub, classify)
	case grammar.NegativeLookahead:
		return !checkLookahead(it, *la.Sub, classify)
	default:
		return true
	}
}

// checkLookahead walks sub starting at the iterator's current position,
// reporting whether any accepting state is reached. It is zero-width: the
// iterator position observable by the caller is always restored. It uses
// its own Mark/Seek pair rather than the shared Save/Restore slot, since a
// caller further up the call stack (findNext, tracking its own best-match
// rollback point) may hold a Save/Restore checkpoint of its own; sharing
// the single slot would let this transient probe clobber that checkpoint.
func checkLookahead(it *charstream.Iterator, sub grammar.DFA, classify Classify) bool {
	mark := it.Mark()
	defer it.Seek(mark)

	state := 0
	for {
		peeked, ok := it.Peek()
		if !ok {
			break
		}

		classIdx, ok := classify(peeked.Ch)
		if !ok {
			break
		}

		if classIdx < 0 || classIdx >= len(sub[state].Transitions) {
			break
		}

		tr := sub[state].Transitions[classIdx]
		if !tr.Valid {
			break
		}

		state = tr.Target
		it.Next()
		if len(sub[state].Accepts) > 0 {
			return true
		}
	}

	return false
}
