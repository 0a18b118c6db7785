// Package prompt renders the instruction sent to the model for each operation.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/sprite-ai/codelens/internal/model"
)

const reviewTemplate = `You are an experienced software engineer performing a code review.
Review the following {{with .SourceLanguage}}{{.}} {{end}}code. Point out bugs, readability
problems, performance issues and security concerns, and suggest concrete improvements.

Respond in Markdown with these sections:
## Summary
## Issues
## Suggestions

Code:
{{.Code}}`

const fixTemplate = `Fix all bugs and errors in the following {{with .SourceLanguage}}{{.}} {{end}}code.
Return ONLY the corrected code. Do not include explanations, comments about the changes,
or any text before or after the code.

Code:
{{.Code}}`

const complexityTemplate = `Analyze the time and space complexity of the following code.

Respond in Markdown with these sections:
## Time Complexity
## Space Complexity
## Explanation
## Possible Optimizations

Use Big-O notation and justify each result by referring to the relevant parts of the code.

Code:
{{.Code}}`

const documentTemplate = `Write documentation for the following code.

Respond in Markdown with these sections:
## Overview
## Functions
Describe every function or method: purpose, parameters, return values and errors.
## Usage Example

Code:
{{.Code}}`

const convertTemplate = `Convert the following {{.SourceLanguage}} code to {{.TargetLanguage}}.
Preserve the behavior and use idiomatic {{.TargetLanguage}} constructs.
Return ONLY the converted code. Do not include explanations or any text before or after the code.

Code:
{{.Code}}`

var templates = map[model.Operation]*template.Template{
	model.OpReview:     template.Must(template.New("review").Parse(reviewTemplate)),
	model.OpFix:        template.Must(template.New("fix").Parse(fixTemplate)),
	model.OpComplexity: template.Must(template.New("complexity").Parse(complexityTemplate)),
	model.OpDocument:   template.Must(template.New("document").Parse(documentTemplate)),
	model.OpConvert:    template.Must(template.New("convert").Parse(convertTemplate)),
}

type templateData struct {
	Code           string
	SourceLanguage string
	TargetLanguage string
}

// Build renders the instruction for op. The code is embedded verbatim.
// Convert requires both languages; the other operations ignore the target
// language and use the source language only as an optional hint.
func Build(op model.Operation, code, sourceLanguage, targetLanguage string) (string, error) {
	tmpl, ok := templates[op]
	if !ok {
		return "", &model.ValidationError{Field: "operation", Message: fmt.Sprintf("unknown operation: %s", op)}
	}

	sourceLanguage = strings.TrimSpace(sourceLanguage)
	targetLanguage = strings.TrimSpace(targetLanguage)
	if op == model.OpConvert {
		if sourceLanguage == "" {
			return "", &model.ValidationError{Field: "sourceLanguage", Message: "sourceLanguage is required"}
		}
		if targetLanguage == "" {
			return "", &model.ValidationError{Field: "targetLanguage", Message: "targetLanguage is required"}
		}
	}

	var b strings.Builder
	err := tmpl.Execute(&b, templateData{
		Code:           code,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", op, err)
	}
	return b.String(), nil
}

// ForRequest renders the instruction for a validated request.
func ForRequest(req model.Request) (string, error) {
	return Build(req.Operation, req.Code, req.SourceLanguage, req.TargetLanguage)
}
