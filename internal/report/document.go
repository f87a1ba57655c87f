// Package report recovers a structured document from the free-form text a
// language model produces for a plant report. The model is not bound to any
// fixed markdown convention, so the pipeline is deliberately forgiving:
// heading normalization restores line boundaries, a section splitter cuts the
// text at recognized titles, and a block extractor classifies each body line
// into key/value pairs, paragraphs, and bullet lists. Structuring is total —
// any input yields a Document, malformed input simply degrades to prose.
package report

// StyleTag is a presentation hint derived from a section's title (and, for
// the safety section, its body).
type StyleTag string

const (
	StyleNeutral StyleTag = "neutral"
	StyleWarning StyleTag = "warning"
	StyleSuccess StyleTag = "success"
	StyleInfo    StyleTag = "info"
)

// BlockKind discriminates the Block variants.
type BlockKind string

const (
	KindKeyValue   BlockKind = "key_value"
	KindParagraph  BlockKind = "paragraph"
	KindBulletList BlockKind = "bullet_list"
)

// Block is one content block of a section. Kind selects which fields are
// meaningful: Key/Value for key_value, Text for paragraph, Items for
// bullet_list. Value may be "" when the source supplied a label with no
// usable value; it is never absent for a key_value block.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Key   string    `json:"key,omitempty"`
	Value string    `json:"value,omitempty"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
}

// KeyValue builds a key/value block.
func KeyValue(key, value string) Block {
	return Block{Kind: KindKeyValue, Key: key, Value: value}
}

// Paragraph builds a paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// BulletList builds a bullet-list block.
func BulletList(items []string) Block {
	return Block{Kind: KindBulletList, Items: items}
}

// Section is one titled region of the report, with its content blocks in
// source order. A section may have zero blocks (title only).
type Section struct {
	Title  string   `json:"title"`
	Style  StyleTag `json:"style"`
	Blocks []Block  `json:"blocks"`
}

// Document is the structured form of one raw report. Sections appear in
// source order; leading untitled text becomes an implicit overview section.
// A Document is built once per input, is never mutated afterwards, and holds
// no resources.
type Document struct {
	Sections []Section `json:"sections"`
}
