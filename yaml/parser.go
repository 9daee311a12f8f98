package yaml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	goyaml "github.com/goccy/go-yaml"
)

// Parser handles parsing YAML request definitions.
type Parser struct{}

// NewParser creates a new YAML parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and parses a request document from a reader. The document
// is validated before it is returned.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	var doc Document
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and parses a request document from a file.
func (p *Parser) ParseFile(filename string) (*Document, error) {
	// #nosec G304 - callers validate the path based on their own requirements
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return p.Parse(file)
}

// ParseString parses a request document from a string.
func (p *Parser) ParseString(s string) (*Document, error) {
	return p.Parse(bytes.NewReader([]byte(s)))
}

// Marshal converts a document back to YAML.
func (p *Parser) Marshal(doc *Document) ([]byte, error) {
	return goyaml.Marshal(doc)
}

// MarshalToFile writes a document to a YAML file.
func (p *Parser) MarshalToFile(doc *Document, filename string) error {
	data, err := p.Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0o600)
}
