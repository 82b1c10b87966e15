package validation

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsJSONContentType reports whether a Content-Type header names JSON:
// application/json or any application/*+json type, with optional parameters.
func (v *Validator) IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// DecodeJSON decodes exactly one JSON value from data into dst.
//
// Syntax errors, empty input and trailing data give a *MalformedBodyError.
// Well-formed JSON whose shape does not fit dst gives a *ValidationError.
func (v *Validator) DecodeJSON(data []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := dec.Decode(dst); err != nil {
		return classifyDecodeError(err)
	}

	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("trailing characters after JSON value")
		}
		return &MalformedBodyError{Err: err}
	}

	return nil
}

func classifyDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		ve := NewValidationError()
		ve.AddInvalidTypeError(field, typeErr.Value, typeErr.Type.String())
		return ve
	}

	if stderrors.Is(err, io.EOF) {
		return &MalformedBodyError{Err: fmt.Errorf("EOF while parsing a value")}
	}

	return &MalformedBodyError{Err: err}
}
