// Package scanner implements the maximal-munch, mode-stack-driven lexical
// scanner: it drives a per-mode DFA over a charstream.Iterator, resolves
// positive/negative lookahead, applies mode transitions, and filters trivia
// token types before handing tokens to the parser.
package scanner

import (
	"go.uber.org/zap"

	"github.com/llxrt/llxrt/charstream"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/token"
)

// Options configures a Scanner beyond the mandatory grammar/classify inputs.
type Options struct {
	// Trivia overrides the grammar's trivia set. Nil means use the
	// grammar's EffectiveTrivia (which itself falls back to {1,2,3,4}).
	Trivia grammar.TerminalSet

	// Logger receives one debug line per emitted token and one warn line
	// per discarded (unrecognized) character. Nil is a valid no-op logger.
	Logger *zap.SugaredLogger

	// TriviaSink, if set, receives every token the trivia filter drops
	// instead of silently discarding it. This is the wiring point for a
	// UserActions.OnComment callback: the parse driver only ever sees the
	// filtered stream, so a caller that wants comment/whitespace tokens
	// installs a sink here rather than in the parser.
	TriviaSink func(*token.Token)
}

// Scanner drives the match finder across an entire input, filtering trivia
// and applying scanner-mode transitions. FileName is accepted for
// diagnostic symmetry with generated parsers but is not otherwise used.
type Scanner struct {
	it         *charstream.Iterator
	ctx        *Context
	classify   Classify
	input      []byte
	fileName   string
	trivia     grammar.TerminalSet
	logger     *zap.SugaredLogger
	modesTable []grammar.ScannerMode
	triviaSink func(*token.Token)
}

// New creates a Scanner over input, starting in mode 0.
func New(input []byte, fileName string, classify Classify, modes []grammar.ScannerMode, opts Options) *Scanner {
	trivia := opts.Trivia
	if trivia == nil {
		trivia = grammar.DefaultTrivia()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scanner{
		it:         charstream.New(input),
		ctx:        NewContext(modes),
		classify:   classify,
		input:      input,
		fileName:   fileName,
		trivia:     trivia,
		logger:     logger,
		modesTable: modes,
		triviaSink: opts.TriviaSink,
	}
}

// Next returns the next non-trivia token, or (nil, nil) at end of input.
// The scanner never fails: unrecognized characters are silently skipped so
// that a single bad character never blocks scanning the rest of the input.
func (s *Scanner) Next() (*token.Token, error) {
	for {
		dfa := s.ctx.DFA()
		m, ok := findNext(s.it, dfa, s.classify)
		if !ok {
			discarded, hasChar := s.it.Next()
			if !hasChar {
				return nil, nil
			}
			s.logger.Warnw("scanner: skipped unrecognized character",
				"char", string(discarded.Ch), "offset", discarded.Offset,
				"line", discarded.Pos.Line, "col", discarded.Pos.Col, "source", s.fileName)
			continue
		}

		s.ctx.HandleModeTransition(m.TokenType)

		if s.trivia.Contains(m.TokenType) {
			s.logger.Debugw("scanner: dropped trivia token", "type", m.TokenType, "source", s.fileName)
			if s.triviaSink != nil {
				text := string(s.input[m.Span.Start:m.Span.End])
				s.triviaSink(token.New(text, m.TokenType, m, s.fileName))
			}
			continue
		}

		text := string(s.input[m.Span.Start:m.Span.End])
		tok := token.New(text, m.TokenType, m, s.fileName)
		s.logger.Debugw("scanner: matched token", "type", m.TokenType, "text", text, "source", s.fileName)
		return tok, nil
	}
}
