// Package textconv converts free-form HTML descriptions to markdown
package textconv // import "github.com/juicetools/juicebox-heartbeat/pkg/textconv"

import (
	"regexp"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/pkg/errors"
)

var (
	htmlTagRegexp  = regexp.MustCompile(`(?i)</?[a-z][\s\S]*>`)
	newlinesRegexp = regexp.MustCompile(`\n+`)
)

// NewMarkdownConverter creates a MarkdownConverter
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{
		converter: md.NewConverter("", true, nil),
	}
}

// MarkdownConverter converts HTML descriptions to markdown, collapsing
// runs of newlines to a single one. Plain text passes through unchanged.
type MarkdownConverter struct {
	converter *md.Converter
}

// ConvertToMarkdown returns text converted to markdown when it contains
// markup, otherwise text unchanged
func (c *MarkdownConverter) ConvertToMarkdown(text string) (string, error) {
	if !htmlTagRegexp.MatchString(text) {
		return text, nil
	}
	converted, err := c.converter.ConvertString(text)
	if err != nil {
		return "", errors.Wrap(err, "Error converting description to markdown")
	}
	return newlinesRegexp.ReplaceAllString(converted, "\n"), nil
}
