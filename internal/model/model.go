// Package model defines the core data types shared by the codelens server and client.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operation is one of the fixed request types codelens supports.
type Operation int

const (
	OpReview Operation = iota
	OpFix
	OpComplexity
	OpDocument
	OpConvert
)

// Operations lists every operation in menu order.
var Operations = []Operation{OpReview, OpFix, OpComplexity, OpDocument, OpConvert}

func (o Operation) String() string {
	switch o {
	case OpReview:
		return "review"
	case OpFix:
		return "fix"
	case OpComplexity:
		return "complexity"
	case OpDocument:
		return "document"
	case OpConvert:
		return "convert"
	default:
		return "unknown"
	}
}

// ParseOperation maps an endpoint or command name to an Operation.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if op.String() == s {
			return op, nil
		}
	}
	return 0, &ValidationError{Field: "operation", Message: fmt.Sprintf("unknown operation: %s", s)}
}

// ResultField is the JSON field of the success body for the operation.
func (o Operation) ResultField() string {
	switch o {
	case OpReview:
		return "review"
	case OpFix:
		return "fixedCode"
	case OpComplexity:
		return "analysis"
	case OpDocument:
		return "documentation"
	case OpConvert:
		return "convertedCode"
	default:
		return ""
	}
}

// IsCode reports whether the operation returns raw source instead of markdown.
func (o Operation) IsCode() bool {
	return o == OpFix || o == OpConvert
}

// Request is a single operation submitted by a client.
type Request struct {
	Operation      Operation
	Code           string
	SourceLanguage string
	TargetLanguage string
}

// Validate checks the fields required by the request's operation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ValidationError{Field: "code", Message: "code is required"}
	}
	if r.Operation == OpConvert {
		if strings.TrimSpace(r.SourceLanguage) == "" {
			return &ValidationError{Field: "sourceLanguage", Message: "sourceLanguage is required"}
		}
		if strings.TrimSpace(r.TargetLanguage) == "" {
			return &ValidationError{Field: "targetLanguage", Message: "targetLanguage is required"}
		}
	}
	return nil
}

// ValidateLocal checks a request before a client sends it. It reports a
// blank snippet as "snippet is empty" and otherwise matches Validate.
func (r Request) ValidateLocal() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ValidationError{Field: "code", Message: "snippet is empty"}
	}
	return r.Validate()
}

// LanguageHint returns the language used to highlight the operation's result.
// Fix results are in the source language, convert results in the target language.
func (r Request) LanguageHint() string {
	if r.Operation == OpConvert {
		return r.TargetLanguage
	}
	return r.SourceLanguage
}

// Result is the tagged result of one operation. Exactly one field is populated
// on the wire: the one named by Operation.ResultField.
type Result struct {
	Operation Operation
	Text      string
}

// Field returns the JSON field carrying the result text.
func (r Result) Field() string {
	return r.Operation.ResultField()
}

// MarshalJSON encodes the result as a single-field object.
func (r Result) MarshalJSON() ([]byte, error) {
	field := r.Field()
	if field == "" {
		return nil, fmt.Errorf("marshal result: unknown operation %d", r.Operation)
	}
	return json.Marshal(map[string]string{field: r.Text})
}
