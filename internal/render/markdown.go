// Package render turns structured plant documents back into presentable
// markdown and HTML.
package render

import (
	"fmt"
	"strings"

	"github.com/maniwar/plantfacts/internal/report"
)

var styleIcons = map[report.StyleTag]string{
	report.StyleWarning: "⚠️",
	report.StyleSuccess: "✅",
	report.StyleInfo:    "💡",
}

// Markdown renders a document as clean markdown: one H2 per section, a
// style icon on non-neutral sections, key-values as bold pairs.
func Markdown(doc report.Document) string {
	if len(doc.Sections) == 0 {
		return ""
	}
	var b strings.Builder
	for i, sec := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if icon, ok := styleIcons[sec.Style]; ok {
			fmt.Fprintf(&b, "## %s %s\n\n", icon, sec.Title)
		} else {
			fmt.Fprintf(&b, "## %s\n\n", sec.Title)
		}
		for _, blk := range sec.Blocks {
			switch blk.Kind {
			case report.KindKeyValue:
				fmt.Fprintf(&b, "**%s:** %s\n\n", blk.Key, blk.Value)
			case report.KindParagraph:
				fmt.Fprintf(&b, "%s\n\n", blk.Text)
			case report.KindBulletList:
				for _, item := range blk.Items {
					fmt.Fprintf(&b, "- %s\n", item)
				}
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
