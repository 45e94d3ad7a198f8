// Package tokenstream buffers a lazy token producer behind a k-lookahead
// window, so the prediction and parse layers can look arbitrarily far ahead
// without the scanner running eagerly over the whole input.
package tokenstream

import (
	"github.com/llxrt/llxrt/internal/queue"
	"github.com/llxrt/llxrt/token"
)

// Source produces tokens one at a time. A scanner.Scanner satisfies this
// directly; (nil, nil) signals end of input.
type Source interface {
	Next() (*token.Token, error)
}

// Stream wraps a Source with a ring-buffer lookahead window.
type Stream struct {
	src     Source
	buf     *queue.Queue[*token.Token]
	eof     bool
	pullErr error
}

// New wraps src in a Stream. The buffer starts empty; tokens are pulled from
// src lazily as Peek/Consume require them.
func New(src Source) *Stream {
	return &Stream{src: src, buf: queue.New[*token.Token]()}
}

// fill ensures the buffer holds at least n tokens, unless the source runs
// out or fails first.
func (s *Stream) fill(n int) error {
	for !s.eof && s.buf.Len() < n {
		tok, err := s.src.Next()
		if err != nil {
			s.pullErr = err
			return err
		}
		if tok == nil {
			s.eof = true
			break
		}
		s.buf.Append(tok)
	}
	return nil
}

// Peek returns the token k positions ahead without consuming it (k=0 is the
// next token to be consumed). It returns (nil, nil) if the stream ends
// before position k.
func (s *Stream) Peek(k int) (*token.Token, error) {
	if s.pullErr != nil {
		return nil, s.pullErr
	}
	if err := s.fill(k + 1); err != nil {
		return nil, err
	}
	items := s.buf.Items()
	if k >= len(items) {
		return nil, nil
	}
	return items[k], nil
}

// Consume removes and returns the next token, or (nil, nil) at end of input.
func (s *Stream) Consume() (*token.Token, error) {
	if s.pullErr != nil {
		return nil, s.pullErr
	}
	if err := s.fill(1); err != nil {
		return nil, err
	}
	tok, ok := s.buf.First()
	if !ok {
		return nil, nil
	}
	return tok, nil
}

// IsEOF reports whether the stream is exhausted: no buffered tokens remain
// and the source has signaled end of input. It may need to pull one token to
// find out.
func (s *Stream) IsEOF() (bool, error) {
	if s.buf.Len() > 0 {
		return false, nil
	}
	if s.eof {
		return true, nil
	}
	if err := s.fill(1); err != nil {
		return false, err
	}
	return s.buf.Len() == 0 && s.eof, nil
}
