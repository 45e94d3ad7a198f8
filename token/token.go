// Package token defines the scanner's output unit.
package token

import (
	"github.com/llxrt/llxrt/grammar"
)

// Token is a matched lexeme: the substring of input it covers, the terminal
// type it was classified as, and the underlying Match (span + positions).
type Token struct {
	text      string
	tokenType int
	match     grammar.Match
	source    string
}

// New builds a Token from its matched text, type, and Match, tagging it
// with a source name for error formatting.
func New(text string, tokenType int, match grammar.Match, source string) *Token {
	return &Token{text: text, tokenType: tokenType, match: match, source: source}
}

func (t *Token) Text() string          { return t.text }
func (t *Token) Type() int             { return t.tokenType }
func (t *Token) Match() grammar.Match  { return t.match }
func (t *Token) Span() grammar.Span    { return t.match.Span }
func (t *Token) SourceName() string    { return t.source }
func (t *Token) Line() int             { return t.match.Positions.Start.Line }
func (t *Token) Col() int              { return t.match.Positions.Start.Col }
func (t *Token) Start() grammar.Position { return t.match.Positions.Start }
func (t *Token) End() grammar.Position   { return t.match.Positions.End }
