package dsnlex

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrBadQuoteChar is returned when (string_quote c) names a character other than ' " or $
	ErrBadQuoteChar = errors.New("unknown string quote character")

	// ErrUnterminatedQuote is returned when input ends inside a quoted literal
	ErrUnterminatedQuote = errors.New("unexpected EOF in quoted literal")
)

// The directives are found anywhere in the document, regardless of the
// surrounding (parser ...) block or where they fall in token order.
var (
	stringQuoteRx      = regexp.MustCompile(`(?is)\(\s*string_quote\s+(.)\s*\)`)
	spaceInQuotesOffRx = regexp.MustCompile(`(?is)\(\s*space_in_quoted_tokens\s+off\s*\)`)
)

// Directives are the whole-document settings that control quoting
type Directives struct {
	// Quote is the quote character, or 0 when no string_quote directive is present
	Quote rune
	// SpaceInQuotes allows quoted literals to span whitespace. It defaults to true
	// when no (space_in_quoted_tokens off) directive is present; many tools write
	// quoted names with spaces without declaring it.
	SpaceInQuotes bool
}

// Quoting reports whether quoted literals are recognized at all
func (d Directives) Quoting() bool {
	return d.Quote != 0 && d.SpaceInQuotes
}

// Prescan resolves the quoting directives from the entire text and returns
// the text with every directive occurrence removed.
func Prescan(text string) (Directives, string, error) {
	d := Directives{SpaceInQuotes: true}

	if m := stringQuoteRx.FindStringSubmatch(text); m != nil {
		switch m[1] {
		case `'`, `"`, `$`:
			d.Quote, _ = utf8.DecodeRuneInString(m[1])
		default:
			return Directives{}, "", fmt.Errorf("%w %q", ErrBadQuoteChar, m[1])
		}
	}
	if spaceInQuotesOffRx.MatchString(text) {
		d.SpaceInQuotes = false
	}

	text = stringQuoteRx.ReplaceAllLiteralString(text, "")
	text = spaceInQuotesOffRx.ReplaceAllLiteralString(text, "")
	return d, text, nil
}

// Option configures a Lexer
type Option func(*Lexer)

// WithFilename sets the filename reported in token positions
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.pos.Filename = name
	}
}

// Lexer splits a DSN document into tokens. Directives are resolved once, up
// front, by NewLexer; Lex then makes a single pass over the stripped text.
type Lexer struct {
	data       []rune
	idx        int
	pos        lexer.Position // position of data[idx]
	directives Directives

	buf    []rune
	bufPos lexer.Position
	tokens []Token
}

// NewLexer prescans text for directives and prepares it for lexing
func NewLexer(text string, opts ...Option) (*Lexer, error) {
	d, stripped, err := Prescan(text)
	if err != nil {
		return nil, err
	}

	l := &Lexer{
		data:       []rune(stripped),
		directives: d,
		pos:        lexer.Position{Line: 1, Column: 1},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Directives returns the quoting directives found during the prescan
func (l *Lexer) Directives() Directives {
	return l.directives
}

// Lex consumes the whole input and returns the token sequence
func (l *Lexer) Lex() ([]Token, error) {
	quoting := l.directives.Quoting()

	for l.idx < len(l.data) {
		start := l.pos
		ch := l.read()

		if quoting && ch == l.directives.Quote {
			if err := l.readQuoted(ch, start); err != nil {
				return nil, err
			}
			continue
		}

		isParen := ch == '(' || ch == ')'
		if unicode.IsSpace(ch) || isParen {
			l.flush()
		}
		if isParen {
			l.tokens = append(l.tokens, Token{Tok: Lookup(string(ch)), Text: string(ch), Pos: start})
			continue
		}
		if !unicode.IsSpace(ch) {
			if len(l.buf) == 0 {
				l.bufPos = start
			}
			l.buf = append(l.buf, ch)
		}
	}
	l.flush()

	tokens := l.tokens
	l.tokens = nil
	return tokens, nil
}

// readQuoted reads up to the closing quote. Characters already accumulated
// before the opening quote stay part of the same literal.
func (l *Lexer) readQuoted(quote rune, start lexer.Position) error {
	if len(l.buf) == 0 {
		l.bufPos = start
	}
	for {
		if l.idx >= len(l.data) {
			return fmt.Errorf("%w starting at %s", ErrUnterminatedQuote, start)
		}
		ch := l.read()
		if ch == quote {
			break
		}
		l.buf = append(l.buf, ch)
	}

	// Quoted text is never a keyword
	l.tokens = append(l.tokens, Token{Tok: Literal, Text: string(l.buf), Pos: l.bufPos})
	l.buf = l.buf[:0]
	return nil
}

// flush emits the accumulated token, if any
func (l *Lexer) flush() {
	if len(l.buf) == 0 {
		return
	}
	text := string(l.buf)
	l.tokens = append(l.tokens, Token{Tok: Lookup(text), Text: text, Pos: l.bufPos})
	l.buf = l.buf[:0]
}

// read consumes and returns the next rune, advancing the position
func (l *Lexer) read() rune {
	ch := l.data[l.idx]
	l.idx++
	l.pos.Offset += utf8.RuneLen(ch)
	if ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return ch
}

// Lex is a convenience wrapper for NewLexer(text).Lex()
func Lex(text string, opts ...Option) ([]Token, error) {
	l, err := NewLexer(text, opts...)
	if err != nil {
		return nil, err
	}
	return l.Lex()
}
