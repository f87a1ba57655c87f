package report

import (
	"regexp"
	"strings"
)

// Schema configures which section titles the splitter recognizes and how
// style tags are assigned. It is passed explicitly to Structure so the same
// engine can serve report layouts other than the default plant report.
type Schema struct {
	// Titles are the canonical display titles, matched case-insensitively.
	Titles []string

	// Styles maps canonical titles to their tags. Titles absent from the
	// map default to neutral.
	Styles map[string]StyleTag

	// SafetyTitle names the section whose tag depends on its body: success
	// when the body states the subject is not toxic, warning otherwise.
	SafetyTitle string

	// OverviewTitle is given to the implicit section built from leading
	// untitled text.
	OverviewTitle string
}

// DefaultSchema returns the schema for the plant analysis prompt's six
// numbered sections.
func DefaultSchema() Schema {
	return Schema{
		Titles: []string{
			"Overview",
			"General Information",
			"Care Instructions",
			"Toxicity",
			"Propagation",
			"Common Issues",
			"Interesting Facts",
		},
		Styles: map[string]StyleTag{
			"Overview":            StyleInfo,
			"General Information": StyleInfo,
			"Care Instructions":   StyleSuccess,
			"Toxicity":            StyleWarning,
			"Propagation":         StyleNeutral,
			"Common Issues":       StyleWarning,
			"Interesting Facts":   StyleInfo,
		},
		SafetyTitle:   "Toxicity",
		OverviewTitle: "Overview",
	}
}

// canonical maps a matched heading back to its display spelling.
func (s Schema) canonical(matched string) string {
	matched = strings.TrimSpace(matched)
	for _, t := range s.Titles {
		if strings.EqualFold(t, matched) {
			return t
		}
	}
	return matched
}

var notToxicRe = regexp.MustCompile(`(?i)\b(?:not\s+toxic|non[-\s]?toxic)\b`)

// styleFor derives a section's tag. Only the safety section consults the
// body; everything else is a fixed lookup on the canonical title.
func styleFor(schema Schema, title, body string) StyleTag {
	if schema.SafetyTitle != "" && strings.EqualFold(title, schema.SafetyTitle) {
		if notToxicRe.MatchString(body) {
			return StyleSuccess
		}
		return StyleWarning
	}
	if tag, ok := schema.Styles[schema.canonical(title)]; ok {
		return tag
	}
	return StyleNeutral
}
