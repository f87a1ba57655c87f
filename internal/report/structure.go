package report

import "strings"

// Structure parses raw model output into an ordered Document. It never
// fails: heading-less input becomes a single overview section, an empty
// input yields a Document with no sections. The function is pure, so
// concurrent calls on independent inputs are safe.
func Structure(raw string, schema Schema) Document {
	if strings.TrimSpace(raw) == "" {
		return Document{}
	}

	normalized := Normalize(raw)

	var doc Document
	for _, rs := range splitSections(schema, normalized) {
		doc.Sections = append(doc.Sections, Section{
			Title:  rs.title,
			Style:  styleFor(schema, rs.title, rs.body),
			Blocks: extractBlocks(rs.body),
		})
	}
	return doc
}
