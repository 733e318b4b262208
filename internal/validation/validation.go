// Package validation schema-checks request payloads before they reach the
// repositories. Each resource/operation pair has its own compiled JSON
// Schema; a failed check reports every violated field, not just the first,
// so bulk-editing clients can surface all problems at once.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/qri-io/jsonschema"
)

// FieldError describes one schema violation tied to a payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compiled schemas, one per resource/operation. Update schemas make every
// field optional; absence means "leave unchanged".
var (
	Signup         = mustSchema(signupSchema)
	Signin         = mustSchema(signinSchema)
	CompoundCreate = mustSchema(compoundCreateSchema)
	CompoundUpdate = mustSchema(compoundUpdateSchema)
	DoseCreate     = mustSchema(doseCreateSchema)
	DoseUpdate     = mustSchema(doseUpdateSchema)
)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return rs
}

// required-keyword failures carry the field name only inside the message,
// quoted, with a root property path
var requiredMsgRe = regexp.MustCompile(`^"([^"]+)"`)

// Validate checks data against the schema and returns one FieldError per
// violation. The second return is an execution error (malformed JSON and
// the like), not a validation verdict.
func Validate(ctx context.Context, s *jsonschema.Schema, data []byte) ([]FieldError, error) {
	keyErrs, err := s.ValidateBytes(ctx, data)
	if err != nil {
		return nil, err
	}

	out := make([]FieldError, 0, len(keyErrs))
	for _, ke := range keyErrs {
		field := strings.TrimPrefix(ke.PropertyPath, "/")
		if field == "" {
			if m := requiredMsgRe.FindStringSubmatch(ke.Message); m != nil {
				field = m[1]
			}
		}
		out = append(out, FieldError{Field: field, Message: ke.Message})
	}

	return out, nil
}
