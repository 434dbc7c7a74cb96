package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tp := New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			input:    "hello *world*",
			contains: []string{"<p>hello <em>world</em></p>"},
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "raw html is escaped",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "javascript links are dropped",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "links get nofollow",
			input:    "see https://example.com",
			contains: []string{`href="https://example.com"`, `rel="nofollow`},
		},
		{
			name:     "code span",
			input:    "run `go test`",
			contains: []string{"<code>go test</code>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tp.Render(tt.input)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, out, e)
			}
		})
	}
}

func TestRenderBlank(t *testing.T) {
	assert.Equal(t, "", New().Render("   \n"))
}
