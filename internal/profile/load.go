package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://dropdf.local/profile.schema.json"

//go:embed schema.json
var schemaJSON []byte

//go:embed default_config.json
var defaultDocument []byte

// ErrInvalidDocument marks a document that does not match the profile schema.
var ErrInvalidDocument = errors.New("invalid profile document")

// LoadError reports a profile that could not be read, validated or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load profile %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load profile: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Default returns the bundled default profile document.
func Default() []byte {
	return append([]byte(nil), defaultDocument...)
}

// Load reads, validates and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	doc, err := parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse validates and parses an in-memory document.
func Parse(data []byte) (*Document, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return doc, nil
}

func parse(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	return parseDocument(data)
}

// Validate checks data against the profile schema.
func Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
