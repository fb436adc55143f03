package econ

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed envelope.schema.json
var envelopeSchema []byte

const envelopeSchemaURL = "envelope.schema.json"

// EnvelopeValidator checks response bodies against the envelope JSON Schema.
type EnvelopeValidator struct {
	schema *jsonschema.Schema
}

// NewEnvelopeValidator compiles the embedded envelope schema.
func NewEnvelopeValidator() (*EnvelopeValidator, error) {
	return NewEnvelopeValidatorFromSchema(envelopeSchema)
}

// NewEnvelopeValidatorFromSchema compiles a caller-supplied schema, for
// servers that tighten the shape of data.
func NewEnvelopeValidatorFromSchema(schemaJSON []byte) (*EnvelopeValidator, error) {
	compiler := jsonschema.NewCompiler()

	err := compiler.AddResource(envelopeSchemaURL, bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("loading envelope schema: %w", err)
	}

	schema, err := compiler.Compile(envelopeSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling envelope schema: %w", err)
	}

	return &EnvelopeValidator{schema: schema}, nil
}

// Validate returns an error wrapping ErrInvalidEnvelope when body is not
// JSON or does not match the schema.
func (v *EnvelopeValidator) Validate(body []byte) error {
	var document interface{}

	err := json.Unmarshal(body, &document)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	err = v.schema.Validate(document)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	return nil
}
