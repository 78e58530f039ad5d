package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSubstitutesVariables(t *testing.T) {
	out, err := Expand("Hello {{ name }}", map[string]any{"name": "Ada"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)
}

func TestExpandIsDeterministic(t *testing.T) {
	vars := map[string]any{"name": "Ada", "items": []any{"a", "b"}}
	tpl := "{% for i in items %}{{ i }}-{% endfor %}{{ name }}"

	first, err := Expand(tpl, vars, false)
	require.NoError(t, err)
	second, err := Expand(tpl, vars, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a-b-Ada", first)
}

func TestExpandAppliesFilters(t *testing.T) {
	out, err := Expand("{{ name|upper }}", map[string]any{"name": "Ada"}, false)
	require.NoError(t, err)
	assert.Equal(t, "ADA", out)
}

func TestExpandSyntaxError(t *testing.T) {
	_, err := Expand("{% if %}", map[string]any{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse template")
}

func TestExpandRejectsNonObjectVariables(t *testing.T) {
	_, err := Expand("hi", []any{"a"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON object")
}

func TestExpandNilVariables(t *testing.T) {
	out, err := Expand("static text", nil, true)
	require.NoError(t, err)
	assert.Equal(t, "static text", out)
}

func TestExpandEscapesStringLeaves(t *testing.T) {
	vars := map[string]any{"company": "Fish & Chips Ltd"}

	escaped, err := Expand("{{ company }}", vars, true)
	require.NoError(t, err)
	assert.Equal(t, `Fish \& Chips Ltd`, escaped)

	raw, err := Expand("{{ company }}", vars, false)
	require.NoError(t, err)
	assert.Equal(t, "Fish & Chips Ltd", raw)
}
