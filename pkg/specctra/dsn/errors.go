package dsn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Parse errors. Every error returned by the parser wraps one of these in a
// *SyntaxError, so callers can test with errors.Is.
var (
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrBadEnum         = errors.New("unrecognised value")
	ErrBadNumber       = errors.New("invalid number")
	ErrTooFewPoints    = errors.New("too few points")
	ErrBadPinRef       = errors.New("invalid pin reference")
	ErrEmptyID         = errors.New("empty pcb id")
)

// SyntaxError reports where and why parsing stopped
type SyntaxError struct {
	Pos   lexer.Position // position of the offending token (zero at end of input)
	Token string         // offending token text, empty at end of input
	Msg   string         // what the parser was looking for
	Err   error          // one of the Err* sentinels
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Pos.Line > 0 {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Token != "" {
		fmt.Fprintf(&sb, " (got %q)", e.Token)
	}
	return sb.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
