// Package predict resolves which production to expand for a non-terminal
// by walking its lookahead DFA against the upcoming tokens.
package predict

import (
	"github.com/llxrt/llxrt/errors"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/tokenstream"
)

// PredictProduction walks the lookahead DFA for nt against stream, peeking
// (never consuming) up to dfa.K tokens ahead, and returns the production
// number to expand.
func PredictProduction(g *grammar.Grammar, nt int, stream *tokenstream.Stream) (int, error) {
	dfa := g.LookaheadAutomata[nt]
	if len(dfa.Transitions) == 0 {
		return dfa.Default, nil
	}

	state := 0
	prod := dfa.Default
	lastValidProd := -1

	for i := 0; i < dfa.K; i++ {
		tok, err := stream.Peek(i)
		if err != nil {
			return 0, err
		}

		term := 0
		if tok != nil {
			term = tok.Type()
		}

		tr, found := findTransition(dfa, state, term)
		if !found {
			break
		}

		state = tr.To
		prod = tr.Production
		if tr.Production >= 0 {
			lastValidProd = tr.Production
		}
	}

	if prod >= 0 {
		return prod, nil
	}
	if lastValidProd >= 0 {
		return lastValidProd, nil
	}

	name := nonTerminalName(g, nt)
	return 0, errors.Format(errors.PredictionFailure,
		"prediction failed: lookahead DFA for non-terminal %s terminated without a production", name)
}

func findTransition(dfa grammar.LookaheadDFA, from, term int) (grammar.LookaheadTransition, bool) {
	for _, tr := range dfa.Transitions {
		if tr.From == from && tr.Terminal == term {
			return tr, true
		}
	}
	return grammar.LookaheadTransition{}, false
}

func nonTerminalName(g *grammar.Grammar, nt int) string {
	if nt >= 0 && nt < len(g.NonTerminalNames) {
		return g.NonTerminalNames[nt]
	}
	return "?"
}
