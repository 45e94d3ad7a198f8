package scanner

import (
	"github.com/llxrt/llxrt/grammar"
)

// Context holds the scanner's active mode and mode stack. Initial mode is 0,
// stack starts empty.
type Context struct {
	modes   []grammar.ScannerMode
	current int
	stack   []int
}

// NewContext creates a Context over the given scanner modes.
func NewContext(modes []grammar.ScannerMode) *Context {
	return &Context{modes: modes}
}

// Current returns the active mode index.
func (c *Context) Current() int {
	return c.current
}

// DFA returns the active mode's DFA.
func (c *Context) DFA() grammar.DFA {
	return c.modes[c.current].DFA
}

// HandleModeTransition applies the first mode transition in the active
// mode whose TokenType matches tokenType, if any. An empty PopMode is
// silently ignored; no matching transition leaves the mode unchanged.
func (c *Context) HandleModeTransition(tokenType int) {
	for _, tr := range c.modes[c.current].Transitions {
		if tr.TokenType != tokenType {
			continue
		}

		switch tr.Action {
		case grammar.SetMode:
			c.current = tr.Target
		case grammar.PushMode:
			c.stack = append(c.stack, c.current)
			c.current = tr.Target
		case grammar.PopMode:
			if len(c.stack) > 0 {
				last := len(c.stack) - 1
				c.current = c.stack[last]
				c.stack = c.stack[:last]
			}
		}
		return
	}
}
