// Package patchschema validates patch documents against a JSON Schema
// before they reach the decoder.
package patchschema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/runoshun/whiteboard/internal/domain"
)

//go:embed patch.schema.json
var schemaSource []byte

const schemaURL = "https://whiteboard.local/schema/patch.json"

// Ensure Validator implements domain.PatchValidator.
var _ domain.PatchValidator = (*Validator)(nil)

// Validator checks raw patch documents.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded patch schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add patch schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile patch schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Schema returns the raw schema document.
func Schema() []byte {
	return schemaSource
}

// Validate reports the first schema violation as a *domain.PatchShapeError.
func (v *Validator) Validate(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &domain.PatchShapeError{Path: "$", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	err = v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate patch: %w", err)
	}
	leaf := deepest(ve)
	return &domain.PatchShapeError{
		Path: pointerToPath(leaf.InstanceLocation),
		Err:  errors.New(leaf.Message),
	}
}

// deepest follows the first cause down to the most specific violation.
func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath converts a JSON pointer such as /children/2/tags/a into
// children[2].tags.a.
func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return "$"
	}
	unescape := strings.NewReplacer("~1", "/", "~0", "~")
	var sb strings.Builder
	prev := ""
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = unescape.Replace(tok)
		if prev == "children" && isIndex(tok) {
			fmt.Fprintf(&sb, "[%s]", tok)
		} else {
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(tok)
		}
		prev = tok
	}
	return sb.String()
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
