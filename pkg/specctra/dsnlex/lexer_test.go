package dsnlex

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignorePos compares tokens by tag and text only
var ignorePos = cmpopts.IgnoreFields(Token{}, "Pos")

func tok(t Tok, text string) Token {
	return Token{Tok: t, Text: text}
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "simple tokens",
			input: "(pcb test)",
			want:  []Token{tok(Lparen, "("), tok(Pcb, "pcb"), tok(Literal, "test"), tok(Rparen, ")")},
		},
		{
			name:  "nested expressions",
			input: "(pcb (net test))",
			want: []Token{
				tok(Lparen, "("), tok(Pcb, "pcb"), tok(Lparen, "("), tok(Net, "net"),
				tok(Literal, "test"), tok(Rparen, ")"), tok(Rparen, ")"),
			},
		},
		{
			name:  "whitespace handling",
			input: "  (  pcb   test  )  ",
			want:  []Token{tok(Lparen, "("), tok(Pcb, "pcb"), tok(Literal, "test"), tok(Rparen, ")")},
		},
		{
			name:  "case insensitive keywords keep original text",
			input: "(PCB Net VIA)",
			want:  []Token{tok(Lparen, "("), tok(Pcb, "PCB"), tok(Net, "Net"), tok(Via, "VIA"), tok(Rparen, ")")},
		},
		{
			name:  "negative numbers",
			input: "(vertex -10.5 -20.3)",
			want:  []Token{tok(Lparen, "("), tok(Literal, "vertex"), tok(Literal, "-10.5"), tok(Literal, "-20.3"), tok(Rparen, ")")},
		},
		{
			name:  "identifiers with dashes and underscores",
			input: "(component R1-123-test my_net_name_123)",
			want: []Token{
				tok(Lparen, "("), tok(Component, "component"), tok(Literal, "R1-123-test"),
				tok(Literal, "my_net_name_123"), tok(Rparen, ")"),
			},
		},
		{
			name:  "parens terminate tokens without whitespace",
			input: "(a(b)c)",
			want: []Token{
				tok(Lparen, "("), tok(Literal, "a"), tok(Lparen, "("), tok(Literal, "b"),
				tok(Rparen, ")"), tok(Literal, "c"), tok(Rparen, ")"),
			},
		},
		{
			name:  "multi-word keywords",
			input: "(lock_type DEFAULT_SMD smd_smd use_via via_keepout wire_keepout)",
			want: []Token{
				tok(Lparen, "("), tok(LockType, "lock_type"), tok(DefaultSmd, "DEFAULT_SMD"),
				tok(SmdSmd, "smd_smd"), tok(UseVia, "use_via"), tok(ViaKeepout, "via_keepout"),
				tok(WireKeepout, "wire_keepout"), tok(Rparen, ")"),
			},
		},
		{
			name:  "quote character without directive is plain text",
			input: `(net "a b")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, `"a`), tok(Literal, `b"`), tok(Rparen, ")")},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only whitespace",
			input: "   \n\t  ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignorePos, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexOneTokenPerLiteralAndParen(t *testing.T) {
	inputs := []string{
		"(a b c)",
		"((x) (y z) w)",
		"(pcb board (structure (layer Top (type signal)) (via v1 v2)))",
		"\n(\ta\n\n b\t)  ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Lex(input)
			if err != nil {
				t.Fatalf("Lex() unexpected error: %v", err)
			}

			parens := strings.Count(input, "(") + strings.Count(input, ")")
			spaced := strings.NewReplacer("(", " ", ")", " ").Replace(input)
			literals := len(strings.Fields(spaced))

			if len(got) != parens+literals {
				t.Errorf("Lex() produced %d tokens, want %d parens + %d literals", len(got), parens, literals)
			}
			for _, tk := range got {
				if strings.TrimSpace(tk.Text) != tk.Text || tk.Text == "" {
					t.Errorf("token %v carries whitespace or is empty", tk)
				}
			}
		})
	}
}

func TestLexQuoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "double quote",
			input: `(string_quote ") (net "test name")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "test name"), tok(Rparen, ")")},
		},
		{
			name:  "single quote",
			input: `(string_quote ') (net 'test name')`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "test name"), tok(Rparen, ")")},
		},
		{
			name:  "dollar quote",
			input: `(string_quote $) (net $test name$)`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "test name"), tok(Rparen, ")")},
		},
		{
			name:  "quoted keyword stays literal",
			input: `(string_quote ") (net "pcb")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "pcb"), tok(Rparen, ")")},
		},
		{
			name:  "quoted parens are text",
			input: `(string_quote ") (net "a(b)c")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "a(b)c"), tok(Rparen, ")")},
		},
		{
			name:  "quoted empty string",
			input: `(string_quote ") (net "")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, ""), tok(Rparen, ")")},
		},
		{
			name:  "space in quoted tokens off keeps quotes as text",
			input: `(string_quote ") (space_in_quoted_tokens off) (net "ab")`,
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, `"ab"`), tok(Rparen, ")")},
		},
		{
			name:  "space in quoted tokens off splits on spaces",
			input: `(string_quote ") (space_in_quoted_tokens off) (net "a b c")`,
			want: []Token{
				tok(Lparen, "("), tok(Net, "net"), tok(Literal, `"a`), tok(Literal, "b"),
				tok(Literal, `c"`), tok(Rparen, ")"),
			},
		},
		{
			name:  "directives are case insensitive and may span lines",
			input: "(STRING_QUOTE\n  \")\n(net \"x y\")",
			want:  []Token{tok(Lparen, "("), tok(Net, "net"), tok(Literal, "x y"), tok(Rparen, ")")},
		},
		{
			name:  "space in quoted tokens on is not a directive",
			input: `(string_quote ") (space_in_quoted_tokens on) (net "a b")`,
			want: []Token{
				tok(Lparen, "("), tok(Literal, "space_in_quoted_tokens"), tok(On, "on"), tok(Rparen, ")"),
				tok(Lparen, "("), tok(Net, "net"), tok(Literal, "a b"), tok(Rparen, ")"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignorePos); diff != "" {
				t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A directive placed after the text it governs still applies, because the
// whole document is scanned for directives before tokenizing.
func TestLexDirectiveAppliesRetroactively(t *testing.T) {
	input := `(pcb "my board" (parser (string_quote ")))`

	got, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex() unexpected error: %v", err)
	}

	want := []Token{
		tok(Lparen, "("), tok(Pcb, "pcb"), tok(Literal, "my board"),
		tok(Lparen, "("), tok(Parser, "parser"), tok(Rparen, ")"), tok(Rparen, ")"),
	}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unclosed quoted string", `(string_quote ") (pcb "unclosed string)`, ErrUnterminatedQuote},
		{"invalid quote character", `(string_quote x) (pcb test)`, ErrBadQuoteChar},
		{"invalid quote character paren-like", `(string_quote #) (pcb test)`, ErrBadQuoteChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatal("Lex() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lex() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrescan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Directives
		wantText string
	}{
		{
			name:     "no directives",
			input:    "(pcb x)",
			want:     Directives{SpaceInQuotes: true},
			wantText: "(pcb x)",
		},
		{
			name:     "quote only",
			input:    `(a (string_quote ") b)`,
			want:     Directives{Quote: '"', SpaceInQuotes: true},
			wantText: "(a  b)",
		},
		{
			name:     "both directives, all occurrences stripped",
			input:    `(string_quote $)(space_in_quoted_tokens off)(space_in_quoted_tokens OFF)x`,
			want:     Directives{Quote: '$', SpaceInQuotes: false},
			wantText: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, text, err := Prescan(tt.input)
			if err != nil {
				t.Fatalf("Prescan() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Prescan() directives = %+v, want %+v", got, tt.want)
			}
			if text != tt.wantText {
				t.Errorf("Prescan() text = %q, want %q", text, tt.wantText)
			}
		})
	}

	if (Directives{Quote: '"', SpaceInQuotes: false}).Quoting() {
		t.Error("Quoting() should be false when spaces in quotes are off")
	}
	if (Directives{SpaceInQuotes: true}).Quoting() {
		t.Error("Quoting() should be false without a quote character")
	}
}

func TestLexPositions(t *testing.T) {
	l, err := NewLexer("(pcb\n  board)", WithFilename("b.dsn"))
	if err != nil {
		t.Fatalf("NewLexer() unexpected error: %v", err)
	}
	got, err := l.Lex()
	if err != nil {
		t.Fatalf("Lex() unexpected error: %v", err)
	}

	want := []lexer.Position{
		{Filename: "b.dsn", Offset: 0, Line: 1, Column: 1},
		{Filename: "b.dsn", Offset: 1, Line: 1, Column: 2},
		{Filename: "b.dsn", Offset: 7, Line: 2, Column: 3},
		{Filename: "b.dsn", Offset: 12, Line: 2, Column: 8},
	}
	if len(got) != len(want) {
		t.Fatalf("Lex() produced %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Pos != want[i] {
			t.Errorf("token %d (%v) at %+v, want %+v", i, got[i], got[i].Pos, want[i])
		}
	}
}
