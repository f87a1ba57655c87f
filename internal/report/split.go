package report

import (
	"regexp"
	"strings"
)

// rawSection is a (title, body) pair cut from the normalized text.
type rawSection struct {
	title string
	body  string
}

// headingPattern builds the single heading-line regex for a schema. A line
// is a heading only when a recognized title is the entire trimmed content,
// in any of the conventions a model emits: "## Title", "**Title:**",
// "N. Title", "N) Title", bare "Title"/"Title:", and their combinations
// ("2. **Toxicity**:", "🌱 **Care Instructions**"). Anchoring the whole line
// keeps a title mentioned mid-sentence from starting a section.
func headingPattern(schema Schema) *regexp.Regexp {
	quoted := make([]string, 0, len(schema.Titles))
	for _, t := range schema.Titles {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	pat := `(?mi)^[ \t]*` +
		emojiAlternation() + `?[ \t]*` +
		`(?:\d+[ \t]*[.)][ \t]*)?` +
		`(?:#{2,6}[ \t]*)?` +
		`(?:\*\*[ \t]*)?` +
		`(` + strings.Join(quoted, "|") + `)` +
		`[ \t]*:?[ \t]*(?:\*\*)?[ \t]*:?[ \t]*$`
	return regexp.MustCompile(pat)
}

// splitSections cuts the normalized text into ordered (title, body) pairs.
// Text before the first heading becomes the implicit overview section, and
// each further occurrence of a recognized title starts a new section —
// duplicates are preserved, never merged, so repetition in the source stays
// visible to the caller.
func splitSections(schema Schema, text string) []rawSection {
	re := headingPattern(schema)
	matches := re.FindAllStringSubmatchIndex(text, -1)

	var out []rawSection

	lead := text
	if len(matches) > 0 {
		lead = text[:matches[0][0]]
	}
	lead = stripDocumentTitle(lead)
	if strings.TrimSpace(lead) != "" {
		out = append(out, rawSection{title: schema.OverviewTitle, body: lead})
	}

	for i, m := range matches {
		title := schema.canonical(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := stripTitleEcho(title, text[m[1]:end])
		out = append(out, rawSection{title: title, body: body})
	}
	return out
}

var reportTitleRe = regexp.MustCompile(`(?i)\breport\b`)

// stripDocumentTitle drops a document-level title line ("Comprehensive
// Report on Monstera") from the leading untitled text. Only the first
// non-blank line is considered, and only when it is heading-shaped: a hash
// heading, or a short sentence-free line mentioning a report.
func stripDocumentTitle(lead string) string {
	lines := strings.Split(lead, "\n")
	for i, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		hashHeading := strings.HasPrefix(t, "#")
		titleLike := reportTitleRe.MatchString(t) && len(t) <= 80 && !strings.HasSuffix(t, ".")
		if hashHeading || titleLike {
			return strings.Join(lines[i+1:], "\n")
		}
		break
	}
	return lead
}

// stripTitleEcho deletes one leading body line that re-states the section's
// own title — some model outputs echo the heading into the body. The echo
// may carry a value on the same line ("Toxicity: This plant is toxic..."),
// in which case only the echoed label is removed and the value survives.
func stripTitleEcho(title, body string) string {
	lines := strings.Split(body, "\n")
	for i, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		bare := strings.Trim(t, "#* \t")
		if strings.EqualFold(bare, title) || strings.EqualFold(bare, title+":") {
			return strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
		}
		if len(bare) > len(title)+1 &&
			strings.EqualFold(bare[:len(title)], title) &&
			bare[len(title)] == ':' {
			lines[i] = strings.TrimSpace(strings.TrimLeft(bare[len(title)+1:], "* "))
			return strings.Join(lines, "\n")
		}
		break
	}
	return body
}
