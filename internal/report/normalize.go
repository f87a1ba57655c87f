package report

import (
	"regexp"
	"strings"
)

// headingEmoji is the fixed set of emoji a model tends to prefix onto bold
// section headings.
var headingEmoji = []string{
	"🌱", "🌿", "🌵", "🍃", "🌸", "🌺", "☀️", "💧", "💡",
	"📌", "📝", "⭐", "✨", "⚠️", "🔍", "🐛", "🔧", "🎯",
}

func emojiAlternation() string {
	quoted := make([]string, len(headingEmoji))
	for i, e := range headingEmoji {
		quoted[i] = regexp.QuoteMeta(e)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

var (
	// A ##..###### heading token fused onto preceding text. The preceding
	// character must not be '#' so a longer hash run is never split.
	fusedHashRe = regexp.MustCompile(`([^#\n])(#{2,6} )`)

	// A numbered heading fused onto preceding text. The bold variant
	// ("...habitat. 2. **Toxicity**:") is the common model output; the
	// plain variant is only split after sentence punctuation to bound
	// false breaks inside prose.
	fusedNumBoldRe  = regexp.MustCompile(`([^\n])\s+(\d+\s*[.)]\s+\*\*)`)
	fusedNumPlainRe = regexp.MustCompile(`([.!?:])\s+(\d+\s*[.)]\s+[A-Z])`)

	// A recognized emoji immediately followed by a bold run, fused onto
	// preceding text.
	fusedEmojiBoldRe = regexp.MustCompile(`([^\n])\s*(` + emojiAlternation() + `\s*\*\*)`)
)

// Normalize rewrites the raw text so every heading occurrence starts on its
// own line. It restores line boundaries only — no content is removed and no
// semantic classification happens here. Normalize is idempotent.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = fusedHashRe.ReplaceAllString(text, "$1\n$2")
	text = fusedNumBoldRe.ReplaceAllString(text, "$1\n$2")
	text = fusedNumPlainRe.ReplaceAllString(text, "$1\n$2")
	text = fusedEmojiBoldRe.ReplaceAllString(text, "$1\n$2")
	return text
}
