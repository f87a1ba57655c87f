// Package facts pulls the handful of quick facts (safety, light, water) out
// of a raw plant report by keyword search. It reads the raw text directly
// and does not depend on the structured document.
package facts

import "strings"

// Fact is one quick-fact tile: a short label and a display value.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var safetyNegations = []string{"not toxic", "non-toxic", "non toxic"}

// First match wins within each table, so broader phrases come later.
var lightPatterns = []Fact{
	{Label: "Light", Value: "☀️ Full Sun"},
	{Label: "Light", Value: "⛅ Partial"},
	{Label: "Light", Value: "🌙 Shade"},
	{Label: "Light", Value: "💡 Bright"},
	{Label: "Light", Value: "🔅 Low Light"},
}

var lightKeywords = []string{"full sun", "partial shade", "full shade", "bright indirect", "low light"}

var waterPatterns = []Fact{
	{Label: "Water", Value: "💧 Daily"},
	{Label: "Water", Value: "💦 Weekly"},
	{Label: "Water", Value: "💧 Moderate"},
	{Label: "Water", Value: "🌵 Minimal"},
}

var waterKeywords = []string{"daily", "weekly", "moderate", "drought"}

// Extract scans the raw report for quick facts. Returns an ordered list
// (safety, light, water); categories with no keyword hit are omitted.
func Extract(raw string) []Fact {
	lower := strings.ToLower(raw)
	var out []Fact

	if strings.Contains(lower, "toxic") {
		value := "Toxic ⚠️"
		for _, neg := range safetyNegations {
			if strings.Contains(lower, neg) {
				value = "Pet Safe ✅"
				break
			}
		}
		out = append(out, Fact{Label: "Safety", Value: value})
	}

	for i, kw := range lightKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, lightPatterns[i])
			break
		}
	}

	for i, kw := range waterKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, waterPatterns[i])
			break
		}
	}

	return out
}
