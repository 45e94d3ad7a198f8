// Package parse drives the parse stack against a token stream, dispatching
// semantic actions and applying the retry-on-mapping-failure policy.
package parse

import (
	"strings"

	"github.com/google/uuid"
	perrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/llxrt/llxrt/convert"
	"github.com/llxrt/llxrt/errors"
	"github.com/llxrt/llxrt/grammar"
	"github.com/llxrt/llxrt/predict"
	"github.com/llxrt/llxrt/token"
	"github.com/llxrt/llxrt/tokenstream"
)

// UserActions is the generated grammar's semantic layer: one dispatch point
// keyed by production number, plus an optional comment hook and an optional
// value converter.
type UserActions interface {
	// CallSemanticAction computes the value for a completed production
	// given its children in right-hand-side order.
	CallSemanticAction(production int, children []any) (any, error)

	// OnComment is invoked for trivia tokens when the caller wires
	// scanner.Options.TriviaSink to it; parse itself never calls it, since
	// the stream it consumes has already had trivia filtered out.
	OnComment(t *token.Token)
}

// ConverterProvider is the "provides-converter" capability a UserActions
// implementation may optionally advertise.
type ConverterProvider interface {
	Converter() convert.Converter
}

// ScopeReceiver lets a UserActions implementation capture the per-parse
// convert.Scope so its semantic actions can call convert.ConvertTo against
// it. Optional: most grammars never need conversion beyond direct type
// assertions.
type ScopeReceiver interface {
	SetScope(*convert.Scope)
}

// Options configures a Parse call.
type Options struct {
	Logger *zap.SugaredLogger
}

// Result is the outcome of a successful parse: the root semantic value and
// the convert.Scope that was active throughout, in case a caller wants to
// inspect or reuse it.
type Result struct {
	Value any
	Scope *convert.Scope
}

// Parse runs the LL(k) driver for start symbol g.StartSymbol against stream,
// dispatching semantic actions through actions. It never consumes tokens
// beyond what the grammar demands; unused trailing tokens are left in the
// stream.
func Parse(g *grammar.Grammar, stream *tokenstream.Stream, actions UserActions, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var converter convert.Converter
	if provider, ok := actions.(ConverterProvider); ok {
		converter = provider.Converter()
	}
	scope := convert.NewScope(converter)
	if receiver, ok := actions.(ScopeReceiver); ok {
		receiver.SetScope(scope)
	}

	sessionID := uuid.New().String()
	logger = logger.With("session", sessionID)
	logger.Debugw("parse: starting", "start_symbol", g.StartSymbol)

	d := &driver{
		g:         g,
		stream:    stream,
		actions:   actions,
		logger:    logger,
		sessionID: sessionID,
	}

	value, err := d.run()
	if err != nil {
		logger.Debugw("parse: failed", "error", err)
		return Result{}, err
	}

	logger.Debugw("parse: finished")
	return Result{Value: value, Scope: scope}, nil
}

type driver struct {
	g         *grammar.Grammar
	stream    *tokenstream.Stream
	actions   UserActions
	logger    *zap.SugaredLogger
	sessionID string

	parseStack []grammar.ParseItem
	valueStack []any
}

func (d *driver) run() (any, error) {
	d.parseStack = []grammar.ParseItem{{Kind: grammar.ItemNonTerminal, Index: d.g.StartSymbol}}

	for len(d.parseStack) > 0 {
		item := d.pop()

		switch item.Kind {
		case grammar.ItemTerminal:
			tok, err := d.expect(item.Index)
			if err != nil {
				return nil, err
			}
			d.pushValue(tok)

		case grammar.ItemClipped:
			if _, err := d.expect(item.Index); err != nil {
				return nil, err
			}

		case grammar.ItemNonTerminal:
			prod, err := predict.PredictProduction(d.g, item.Index, d.stream)
			if err != nil {
				return nil, err
			}
			d.pushParse(grammar.ParseItem{Kind: grammar.ItemEnd, Index: prod})
			d.pushRHS(d.g.Productions[prod].RHS)

		case grammar.ItemEnd:
			value, err := d.reduce(item.Index)
			if err != nil {
				return nil, err
			}
			d.pushValue(value)
		}
	}

	if len(d.valueStack) == 0 {
		return nil, nil
	}
	return d.valueStack[len(d.valueStack)-1], nil
}

// expect checks the next token against the expected terminal type,
// consuming it on success.
func (d *driver) expect(terminalType int) (*token.Token, error) {
	tok, err := d.stream.Peek(0)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, errors.Format(errors.SyntaxError,
			"expected %s, found EOF", d.terminalName(terminalType))
	}
	if tok.Type() != terminalType {
		return nil, errors.FormatPos(tok, errors.SyntaxError,
			"expected %s, found %s", d.terminalName(terminalType), d.terminalName(tok.Type()))
	}
	return d.stream.Consume()
}

// reduce pops a production's children off the value stack, invokes the
// semantic action with the retry policy, and returns its result.
func (d *driver) reduce(production int) (any, error) {
	rhs := d.g.Productions[production].RHS
	childCount := 0
	for _, sym := range rhs {
		if sym.Kind != grammar.ItemClipped {
			childCount++
		}
	}

	if len(d.valueStack) < childCount {
		return nil, errors.Format(errors.InternalParseError,
			"value stack underrun reducing production %d: need %d children, have %d",
			production, childCount, len(d.valueStack))
	}

	children := make([]any, childCount)
	for i := childCount - 1; i >= 0; i-- {
		children[i] = d.popValue()
	}

	d.logger.Debugw("parse: dispatch", "production", production, "child_count", childCount)

	value, err := d.actions.CallSemanticAction(production, children)
	if err == nil {
		return value, nil
	}

	if !isSemanticMappingError(err) {
		return nil, err
	}

	filtered, hasToken, hasNonToken := filterTokenChildren(children)
	if !(hasToken && hasNonToken) {
		return nil, err
	}

	d.logger.Debugw("parse: retrying semantic action without token children",
		"production", production, "raw_count", len(children), "filtered_count", len(filtered))

	retryValue, retryErr := d.actions.CallSemanticAction(production, filtered)
	if retryErr == nil {
		return retryValue, nil
	}

	composite := errors.Format(errors.SemanticMappingError,
		"semantic action for production %d failed on both raw children %s and filtered children %s",
		production, describeTypes(children), describeTypes(filtered))
	return nil, composite.WithCause(retryErr)
}

func isSemanticMappingError(err error) bool {
	e, ok := perrors.Cause(err).(*errors.Error)
	return ok && e.Kind == errors.SemanticMappingError
}

// filterTokenChildren splits children into the subset that are not
// *token.Token, reporting whether both token and non-token children were
// present in the original set.
func filterTokenChildren(children []any) (filtered []any, hasToken, hasNonToken bool) {
	for _, c := range children {
		if _, isToken := c.(*token.Token); isToken {
			hasToken = true
			continue
		}
		hasNonToken = true
		filtered = append(filtered, c)
	}
	return filtered, hasToken, hasNonToken
}

func describeTypes(children []any) string {
	kinds := make([]string, len(children))
	for i, c := range children {
		if _, isToken := c.(*token.Token); isToken {
			kinds[i] = "token"
		} else {
			kinds[i] = "value"
		}
	}
	return "[" + strings.Join(kinds, ",") + "]"
}

func (d *driver) terminalName(index int) string {
	if index >= 0 && index < len(d.g.TerminalNames) {
		return d.g.TerminalNames[index]
	}
	return "EOF"
}

func (d *driver) pop() grammar.ParseItem {
	last := len(d.parseStack) - 1
	item := d.parseStack[last]
	d.parseStack = d.parseStack[:last]
	return item
}

func (d *driver) pushParse(item grammar.ParseItem) {
	d.parseStack = append(d.parseStack, item)
}

// pushRHS pushes rhs in reverse order so the first symbol is popped first.
func (d *driver) pushRHS(rhs []grammar.ParseItem) {
	for i := len(rhs) - 1; i >= 0; i-- {
		d.pushParse(rhs[i])
	}
}

func (d *driver) pushValue(v any) {
	d.valueStack = append(d.valueStack, v)
}

func (d *driver) popValue() any {
	last := len(d.valueStack) - 1
	v := d.valueStack[last]
	d.valueStack = d.valueStack[:last]
	return v
}
