package dsnlex

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Tok identifies the kind of a token: a reserved word, a parenthesis,
// or Literal for everything else (identifiers, numbers, quoted strings)
type Tok int

const (
	Literal Tok = iota
	Lparen
	Rparen

	// Keywords
	Area
	Attach
	Back
	Both
	Boundary
	Circle
	Circuit
	Class
	Clearance
	Cm
	Component
	Connect
	DefaultSmd
	Front
	Gate
	Image
	Inch
	Jumper
	Keepout
	Layer
	Library
	LockType
	Mil
	Mixed
	Mm
	Net
	Network
	Off
	On
	Outline
	Padstack
	Parser
	Path
	Pcb
	Pin
	Pins
	Place
	Placement
	Plane
	Pn
	Polygon
	Position
	Power
	Property
	Qarc
	Rect
	Reduced
	Resolution
	Rotate
	Rule
	Shape
	Signal
	Smd
	SmdSmd
	Structure
	Testpoint
	Type
	Um
	Unit
	UseVia
	Via
	ViaKeepout
	Width
	Window
	Wire
	WireKeepout
	Wiring

	numToks
)

// tokNames holds the DSN spelling of every Tok
var tokNames = [numToks]string{
	Literal:     "literal",
	Lparen:      "(",
	Rparen:      ")",
	Area:        "area",
	Attach:      "attach",
	Back:        "back",
	Both:        "both",
	Boundary:    "boundary",
	Circle:      "circle",
	Circuit:     "circuit",
	Class:       "class",
	Clearance:   "clearance",
	Cm:          "cm",
	Component:   "component",
	Connect:     "connect",
	DefaultSmd:  "default_smd",
	Front:       "front",
	Gate:        "gate",
	Image:       "image",
	Inch:        "inch",
	Jumper:      "jumper",
	Keepout:     "keepout",
	Layer:       "layer",
	Library:     "library",
	LockType:    "lock_type",
	Mil:         "mil",
	Mixed:       "mixed",
	Mm:          "mm",
	Net:         "net",
	Network:     "network",
	Off:         "off",
	On:          "on",
	Outline:     "outline",
	Padstack:    "padstack",
	Parser:      "parser",
	Path:        "path",
	Pcb:         "pcb",
	Pin:         "pin",
	Pins:        "pins",
	Place:       "place",
	Placement:   "placement",
	Plane:       "plane",
	Pn:          "pn",
	Polygon:     "polygon",
	Position:    "position",
	Power:       "power",
	Property:    "property",
	Qarc:        "qarc",
	Rect:        "rect",
	Reduced:     "reduced",
	Resolution:  "resolution",
	Rotate:      "rotate",
	Rule:        "rule",
	Shape:       "shape",
	Signal:      "signal",
	Smd:         "smd",
	SmdSmd:      "smd_smd",
	Structure:   "structure",
	Testpoint:   "testpoint",
	Type:        "type",
	Um:          "um",
	Unit:        "unit",
	UseVia:      "use_via",
	Via:         "via",
	ViaKeepout:  "via_keepout",
	Width:       "width",
	Window:      "window",
	Wire:        "wire",
	WireKeepout: "wire_keepout",
	Wiring:      "wiring",
}

// keywords maps lowercase spellings to their Tok. Literal is deliberately absent.
var keywords = func() map[string]Tok {
	m := make(map[string]Tok, numToks)
	for t := Lparen; t < numToks; t++ {
		m[tokNames[t]] = t
	}
	return m
}()

// Lookup returns the Tok for a raw token text. Matching is case-insensitive;
// anything that is not a reserved word is Literal.
func Lookup(s string) Tok {
	if t, ok := keywords[strings.ToLower(s)]; ok {
		return t
	}
	return Literal
}

// String returns the DSN spelling of the tag
func (t Tok) String() string {
	if t < 0 || t >= numToks {
		return fmt.Sprintf("Tok(%d)", int(t))
	}
	return tokNames[t]
}

// IsKeyword reports whether t is a reserved word (not a paren or Literal)
func (t Tok) IsKeyword() bool {
	return t > Rparen && t < numToks
}

// Token is one lexical token. Tok is the normalized tag used for grammar
// decisions; Text is the original spelling, used for identifiers and numbers.
type Token struct {
	Tok  Tok
	Text string
	Pos  lexer.Position
}

// String formats the token as Token(tag:text)
func (t Token) String() string {
	return fmt.Sprintf("Token(%s:%s)", t.Tok, t.Text)
}
