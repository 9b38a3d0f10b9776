package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mvc/pkg/sanitizer"
)

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "page title with markup",
			input:    "<b>Page</b> - Site",
			expected: "Page - Site",
		},
		{
			name:     "strips nested tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "keeps script and style text",
			input:    `Home<script>alert('xss')</script><style>b{}</style>`,
			expected: "Homealert('xss')b{}",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "strips comments",
			input:    "a<!-- hidden -->b",
			expected: "ab",
		},
		{
			name:     "leaves encoded markup encoded",
			input:    "&lt;b&gt;Page - Site",
			expected: "&lt;b&gt;Page - Site",
		},
		{
			name:     "leaves other entities as written",
			input:    "Tom &amp; Jerry",
			expected: "Tom &amp; Jerry",
		},
		{
			name:     "keeps bare ampersand and quotes",
			input:    `Tom & "Jerry's"`,
			expected: `Tom & "Jerry's"`,
		},
		{
			name:     "keeps lone angle bracket",
			input:    "a < b",
			expected: "a < b",
		},
		{
			name:     "preserves surrounding whitespace",
			input:    "  <i>desc</i>  ",
			expected: "  desc  ",
		},
		{
			name:     "keeps trailing separator",
			input:    "Page - ",
			expected: "Page - ",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripTags(tt.input))
		})
	}
}

func TestStripTags_NoReassembledTags(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"<<b>script>alert(1)<</b>/script>",
		"<<i>b>x<</i>/b>",
		"<script><b>x</b></script>",
	} {
		out := sanitizer.StripTags(input)
		assert.NotContains(t, out, "<", "input %q", input)
		assert.NotContains(t, out, ">", "input %q", input)
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps formatting tags", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>Hello <strong>world</strong></p>", sanitizer.SanitizeHTML("<p>Hello <strong>world</strong></p>"))
	})

	t.Run("drops script tags", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "<p>Hi</p>", sanitizer.SanitizeHTML("<p>Hi</p><script>alert(1)</script>"))
	})

	t.Run("adds nofollow to links", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeHTML(`<a href="https://example.com">x</a>`)
		assert.Contains(t, out, `rel="nofollow"`)
	})
}
