package parse

import (
	"testing"

	"go.uber.org/zap"

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

// recordingActions logs every CallSemanticAction invocation and looks up its
// return value from a per-production callback table.
type recordingActions struct {
	calls []recordedCall
	handle map[int]func([]any) (any, error)
}

type recordedCall struct {
	production int
	children   []any
}

func (r *recordingActions) CallSemanticAction(production int, children []any) (any, error) {
	r.calls = append(r.calls, recordedCall{production, children})
	if h, ok := r.handle[production]; ok {
		return h(children)
	}
	return nil, nil
}

func (r *recordingActions) OnComment(t *token.Token) {}

// Clipped terminal: production A -> C(semicolon) T(ident); child_count is
// 1, the action receives only the ident token.
func TestParseClippedTerminalExcludedFromChildren(t *testing.T) {
	const semicolon, ident = 1, 2

	g := &grammar.Grammar{
		TerminalNames:    []string{"eof", "semicolon", "ident"},
		NonTerminalNames: []string{"A"},
		StartSymbol:      0,
		Productions: []grammar.Production{
			{LHS: 0, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemClipped, Index: semicolon},
				{Kind: grammar.ItemTerminal, Index: ident},
			}},
		},
		LookaheadAutomata: []grammar.LookaheadDFA{{Default: 0}},
	}

	actions := &recordingActions{handle: map[int]func([]any) (any, error){
		0: func(children []any) (any, error) { return "reduced", nil },
	}}

	stream := mkStream(semicolon, ident)
	result, err := Parse(g, stream, actions, Options{})
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.Expect(t, result.Value == "reduced", "reduced", result.Value)

	test.ExpectInt(t, 1, len(actions.calls))
	children := actions.calls[0].children
	test.ExpectInt(t, 1, len(children))
	tok, isToken := children[0].(*token.Token)
	test.Assert(t, isToken, "expecting the sole child to be a token")
	test.ExpectInt(t, ident, tok.Type())
}

// Action retry: production A -> T(lparen) N(expr) T(rparen). The first call
// sees two tokens and one non-token and fails with a mapping error; the
// retry with non-token children only succeeds.
func TestParseRetriesSemanticActionOnMappingError(t *testing.T) {
	const lparen, rparen, ident = 1, 2, 3
	const nonTermA, nonTermExpr = 0, 1
	const prodA, prodExpr = 0, 1

	g := &grammar.Grammar{
		TerminalNames:    []string{"eof", "lparen", "rparen", "ident"},
		NonTerminalNames: []string{"A", "Expr"},
		StartSymbol:      nonTermA,
		Productions: []grammar.Production{
			{LHS: nonTermA, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemTerminal, Index: lparen},
				{Kind: grammar.ItemNonTerminal, Index: nonTermExpr},
				{Kind: grammar.ItemTerminal, Index: rparen},
			}},
			{LHS: nonTermExpr, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemTerminal, Index: ident},
			}},
		},
		LookaheadAutomata: []grammar.LookaheadDFA{
			{Default: prodA},
			{Default: prodExpr},
		},
	}

	firstCall := true
	actions := &recordingActions{handle: map[int]func([]any) (any, error){
		prodExpr: func(children []any) (any, error) { return "EXPRVAL", nil },
		prodA: func(children []any) (any, error) {
			if firstCall {
				firstCall = false
				return nil, errors.Format(errors.SemanticMappingError, "mixed children unsupported")
			}
			test.ExpectInt(t, 1, len(children))
			test.Assert(t, children[0] == "EXPRVAL", "expecting filtered retry to receive the non-token child")
			return "REDUCED", nil
		},
	}}

	stream := mkStream(lparen, ident, rparen)
	result, err := Parse(g, stream, actions, Options{})
	test.Assert(t, err == nil, "unexpected error: %v", err)
	test.Expect(t, result.Value == "REDUCED", "REDUCED", result.Value)

	test.ExpectInt(t, 3, len(actions.calls))
	first := actions.calls[1] // calls[0] is the Expr reduction
	test.ExpectInt(t, 3, len(first.children))
}

func TestParseRetryFailureChainsCause(t *testing.T) {
	const lparen, rparen, ident = 1, 2, 3
	const nonTermA, nonTermExpr = 0, 1
	const prodA, prodExpr = 0, 1

	g := &grammar.Grammar{
		TerminalNames:    []string{"eof", "lparen", "rparen", "ident"},
		NonTerminalNames: []string{"A", "Expr"},
		StartSymbol:      nonTermA,
		Productions: []grammar.Production{
			{LHS: nonTermA, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemTerminal, Index: lparen},
				{Kind: grammar.ItemNonTerminal, Index: nonTermExpr},
				{Kind: grammar.ItemTerminal, Index: rparen},
			}},
			{LHS: nonTermExpr, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemTerminal, Index: ident},
			}},
		},
		LookaheadAutomata: []grammar.LookaheadDFA{
			{Default: prodA},
			{Default: prodExpr},
		},
	}

	actions := &recordingActions{handle: map[int]func([]any) (any, error){
		prodExpr: func(children []any) (any, error) { return "EXPRVAL", nil },
		prodA: func(children []any) (any, error) {
			return nil, errors.Format(errors.SemanticMappingError, "always fails")
		},
	}}

	stream := mkStream(lparen, ident, rparen)
	_, err := Parse(g, stream, actions, Options{})
	test.ExpectErrorKind(t, errors.SemanticMappingError, err)
	test.Assert(t, errors.Cause(err) != nil, "expecting the retry failure chained as cause")
}

func TestParseSyntaxErrorOnMismatchedTerminal(t *testing.T) {
	const ident = 1
	g := &grammar.Grammar{
		TerminalNames:    []string{"eof", "ident"},
		NonTerminalNames: []string{"A"},
		StartSymbol:      0,
		Productions: []grammar.Production{
			{LHS: 0, RHS: []grammar.ParseItem{{Kind: grammar.ItemTerminal, Index: ident}}},
		},
		LookaheadAutomata: []grammar.LookaheadDFA{{Default: 0}},
	}

	actions := &recordingActions{}
	stream := mkStream(99) // wrong type
	_, err := Parse(g, stream, actions, Options{})
	test.ExpectErrorKind(t, errors.SyntaxError, err)
}

func TestParseSyntaxErrorOnUnexpectedEOF(t *testing.T) {
	const ident = 1
	g := &grammar.Grammar{
		TerminalNames:    []string{"eof", "ident"},
		NonTerminalNames: []string{"A"},
		StartSymbol:      0,
		Productions: []grammar.Production{
			{LHS: 0, RHS: []grammar.ParseItem{{Kind: grammar.ItemTerminal, Index: ident}}},
		},
		LookaheadAutomata: []grammar.LookaheadDFA{{Default: 0}},
	}

	actions := &recordingActions{}
	stream := mkStream()
	_, err := Parse(g, stream, actions, Options{})
	test.ExpectErrorKind(t, errors.SyntaxError, err)
}

func TestReduceUnderrunIsInternalParseError(t *testing.T) {
	g := &grammar.Grammar{
		TerminalNames:    []string{"eof"},
		NonTerminalNames: []string{"A"},
		Productions: []grammar.Production{
			{LHS: 0, RHS: []grammar.ParseItem{
				{Kind: grammar.ItemTerminal, Index: 0},
				{Kind: grammar.ItemTerminal, Index: 0},
			}},
		},
	}

	d := &driver{g: g, stream: mkStream(), actions: &recordingActions{}, logger: zap.NewNop().Sugar()}
	_, err := d.reduce(0)
	test.ExpectErrorKind(t, errors.InternalParseError, err)
}
