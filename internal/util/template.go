package util

import (
	"bytes"
	"strings"
	"text/template"
)

// RenderTemplate replaces template variables using Go's text/template
// package. Prompts are plain text, so no escaping is applied. This lives in
// internal to avoid committing to public API stability prematurely.
func RenderTemplate(text string, state map[string]any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}

	tmpl, err := template.New("prompt").Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, state); err != nil {
		return "", err
	}
	return buf.String(), nil
}
