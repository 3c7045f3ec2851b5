package dsn

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsnlex"
)

// ParseFile reads and parses a Specctra DSN file
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, dsnlex.WithFilename(filename))
}

// Parse reads and parses a Specctra DSN document from an io.Reader.
// The quoting directives apply to the whole document, so the input is
// read completely before tokenizing.
func Parse(r io.Reader, opts ...dsnlex.Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses a Specctra DSN document held in memory
func ParseString(text string, opts ...dsnlex.Option) (*Document, error) {
	tokens, err := dsnlex.Lex(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize: %w", err)
	}

	doc, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}
