package predict

import (
	"testing"

	"github.com/llxrt/llxrt/errors"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/internal/test"
	"github.com/llxrt/llxrt/token"
	"github.com/llxrt/llxrt/tokenstream"
)

type fixedSource struct {
	toks []*token.Token
	pos  int
}

func (f *fixedSource) Next() (*token.Token, error) {
	if f.pos >= len(f.toks) {
		return nil, nil
	}
	tok := f.toks[f.pos]
	f.pos++
	return tok, nil
}

func mkTok(tt int) *token.Token {
	return token.New("x", tt, grammar.Match{TokenType: tt}, "test")
}

func mkStream(types ...int) *tokenstream.Stream {
	toks := make([]*token.Token, len(types))
	for i, tt := range types {
		toks[i] = mkTok(tt)
	}
	return tokenstream.New(&fixedSource{toks: toks})
}

func TestPredictNoTransitionsReturnsDefault(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames:  []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{Default: 3}},
	}
	stream := mkStream(1)
	prod, err := PredictProduction(g, 0, stream)
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.ExpectInt(t, 3, prod)
}

func TestPredictWalksToImmediateProduction(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames: []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{
			Default: -1,
			K:       1,
			Transitions: []grammar.LookaheadTransition{
				{From: 0, Terminal: 5, To: 1, Production: 2},
			},
		}},
	}
	stream := mkStream(5)
	prod, err := PredictProduction(g, 0, stream)
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.ExpectInt(t, 2, prod)
}

func TestPredictFallsBackToLastValidWhenDeadEnd(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames: []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{
			Default: -1,
			K:       2,
			Transitions: []grammar.LookaheadTransition{
				{From: 0, Terminal: 5, To: 1, Production: 2},
				// state 1 has no outgoing transition for the second token
			},
		}},
	}
	stream := mkStream(5, 9)
	prod, err := PredictProduction(g, 0, stream)
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.ExpectInt(t, 2, prod)
}

func TestPredictEOFEncodedAsZero(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames: []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{
			Default: -1,
			K:       1,
			Transitions: []grammar.LookaheadTransition{
				{From: 0, Terminal: 0, To: 1, Production: 4},
			},
		}},
	}
	stream := mkStream() // no tokens: peek(0) returns nil, encoded as term 0
	prod, err := PredictProduction(g, 0, stream)
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.ExpectInt(t, 4, prod)
}

// A negative-production edge marks a state with no production of its own;
// once the walk takes one, it commits to failing on dead-end rather than
// falling back to the automaton's Default, even though Default here is a
// valid, non-negative production number.
func TestPredictDeadEndAfterNegativeEdgeDoesNotFallBackToDefault(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames: []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{
			Default: 0,
			K:       2,
			Transitions: []grammar.LookaheadTransition{
				{From: 0, Terminal: 10, To: 1, Production: -1},
				// state 1 has no outgoing transition for the second token
			},
		}},
	}
	stream := mkStream(10, 99)
	_, err := PredictProduction(g, 0, stream)
	test.ExpectErrorKind(t, errors.PredictionFailure, err)
}

func TestPredictFailsWithNoResolution(t *testing.T) {
	g := &grammar.Grammar{
		NonTerminalNames: []string{"expr"},
		LookaheadAutomata: []grammar.LookaheadDFA{{
			Default: -1,
			K:       1,
			Transitions: []grammar.LookaheadTransition{
				{From: 0, Terminal: 5, To: 1, Production: -1},
			},
		}},
	}
	stream := mkStream(5)
	_, err := PredictProduction(g, 0, stream)
	test.ExpectErrorKind(t, errors.PredictionFailure, err)
}
