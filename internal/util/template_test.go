package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("Hello {{.name}}, you asked: {{.question}}", map[string]any{
		"name":     "Alice",
		"question": "who sent it?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice, you asked: who sent it?", out)
}

func TestRenderTemplatePlainTextFastPath(t *testing.T) {
	out, err := RenderTemplate("no markers here", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers here", out)
}

func TestRenderTemplateInvalid(t *testing.T) {
	_, err := RenderTemplate("{{.broken", nil)
	assert.Error(t, err)
}
