package msg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeData(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"100%", "100%25"},
		{"a\nb", "a%0Ab"},
		{"a\r\nb", "a%0D%0Ab"},
		{"%0A", "%250A"},
		{"a:b,c", "a:b,c"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeData(tt.input))
		})
	}
}

func TestEscapeProperty(t *testing.T) {
	assert.Equal(t, "C%3A/a%2Cb.mjs", EscapeProperty("C:/a,b.mjs"))
	assert.Equal(t, "a%25%0A", EscapeProperty("a%\n"))
}

func TestFormatAnnotation(t *testing.T) {
	t.Run("no properties", func(t *testing.T) {
		assert.Equal(t, "::notice::hello%0Aworld", FormatAnnotation(LevelNotice, "hello\nworld"))
	})

	t.Run("with file", func(t *testing.T) {
		assert.Equal(
			t,
			"::warning file=specs/a.mjs::Cannot find module 'x'",
			FormatAnnotation(LevelWarning, "Cannot find module 'x'", "file", "specs/a.mjs"),
		)
	})

	t.Run("empty property skipped", func(t *testing.T) {
		assert.Equal(t, "::error::boom", FormatAnnotation(LevelError, "boom", "file", ""))
	})
}

func TestWriteAnnotation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnnotation(&buf, LevelWarning, "x", "title", "import"))
	assert.Equal(t, "::warning title=import::x\n", buf.String())
}

func TestFormatMessageForCI(t *testing.T) {
	t.Run("github actions", func(t *testing.T) {
		t.Setenv("GITHUB_ACTIONS", "true")
		assert.Equal(t, "::warning::test message", formatMessageForCI(LevelWarning, "test %s", "message"))
	})
}
