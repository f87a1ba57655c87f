package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/maniwar/plantfacts/internal/report"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders a document as an HTML fragment by converting the markdown
// rendering.
func HTML(doc report.Document) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
