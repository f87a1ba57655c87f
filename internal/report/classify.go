package report

import (
	"regexp"
	"strings"
)

// lineKind is the classification of one physical line.
type lineKind int

const (
	lineProse lineKind = iota
	lineBullet
	lineKeyValue
)

// classified is the result of classifying one line. consumedNext is set when
// a label-only line adopted the following non-blank line as its value.
type classified struct {
	kind         lineKind
	key          string
	value        string
	text         string
	consumedNext bool
}

// Patterns are tried in precedence order; they overlap, so order matters.
var (
	bulletRe = regexp.MustCompile(`^[-*]\s+(.*)$`)

	// "**Label**: value" and "**Label:** value". The colon may sit inside
	// or outside the bold run; a value must be present on the same line.
	boldKVRe = regexp.MustCompile(`^\*\*\s*([^*]+?)\s*:?\s*\*\*\s*:?\s*(\S.*)$`)

	// "Label: value" where the label is a short capitalized phrase.
	plainKVRe = regexp.MustCompile(`^([A-Z][A-Za-z0-9 \-/]{1,58})\s*:\s+(\S.*)$`)

	// Label-only shapes: a lone bold run, a lone hash heading, or a short
	// capitalized phrase ending in a colon. The bare-phrase form requires
	// the colon — without it any short capitalized prose line ("Bright
	// indirect") would be mistaken for a label.
	boldOnlyRe   = regexp.MustCompile(`^\*\*\s*([^*]+?)\s*:?\s*\*\*\s*:?\s*$`)
	hashOnlyRe   = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*:?\s*$`)
	labelColonRe = regexp.MustCompile(`^([A-Z][A-Za-z0-9 \-/]{1,58})\s*:$`)
)

// classifyLine decides whether a line is a bullet, a key/value pair, or
// prose. next is the next non-blank line ("" when there is none); it is
// consulted only when the line is a heading-shaped label with no value, in
// which case the next line is adopted as the value unless it would start a
// block of its own.
func classifyLine(line, next string) classified {
	trimmed := strings.TrimSpace(line)

	if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
		return classified{kind: lineBullet, text: strings.TrimSpace(m[1])}
	}
	if m := boldKVRe.FindStringSubmatch(trimmed); m != nil {
		return classified{kind: lineKeyValue, key: m[1], value: strings.TrimSpace(m[2])}
	}
	if m := plainKVRe.FindStringSubmatch(trimmed); m != nil {
		return classified{kind: lineKeyValue, key: strings.TrimSpace(m[1]), value: strings.TrimSpace(m[2])}
	}
	if label, ok := labelOnly(trimmed); ok {
		nextTrimmed := strings.TrimSpace(next)
		if nextTrimmed != "" && !startsOwnBlock(nextTrimmed) {
			return classified{kind: lineKeyValue, key: label, value: nextTrimmed, consumedNext: true}
		}
		return classified{kind: lineKeyValue, key: label}
	}
	return classified{kind: lineProse, text: trimmed}
}

// labelOnly reports whether the line is a label with no value on the same
// line, returning the label with emphasis markers and trailing colon
// stripped.
func labelOnly(trimmed string) (string, bool) {
	if m := boldOnlyRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if m := hashOnlyRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if m := labelColonRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// startsOwnBlock reports whether a line would begin a block of its own and
// therefore cannot be adopted as a pending label's value.
func startsOwnBlock(trimmed string) bool {
	if bulletRe.MatchString(trimmed) {
		return true
	}
	if boldKVRe.MatchString(trimmed) || plainKVRe.MatchString(trimmed) {
		return true
	}
	_, ok := labelOnly(trimmed)
	return ok
}
