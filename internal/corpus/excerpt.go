package corpus

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// excerptWindow is how many raw characters are taken around the
	// first keyword hit before cleanup.
	excerptWindow = 1200
	// boundaryLookback bounds the backward search for a sentence start.
	boundaryLookback = 200
	// excerptLimit is the hard cap applied after cleanup.
	excerptLimit = 1000
)

var sentenceBoundaries = []string{". ", ".\n", "? ", "! "}

var (
	multiSpaceRe   = regexp.MustCompile(` +`)
	bulletGlyphRe  = regexp.MustCompile(`[•▪▫◦⚫⚬○●]`)
	bulletBreakRe  = regexp.MustCompile(`\n+•`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	prePunctRe     = regexp.MustCompile(`\s+([,.;:!?])`)
	periodCapRe    = regexp.MustCompile(`\.([A-Z])`)
)

// Excerpt locates the most relevant sentence-aligned window of text for
// the keywords and cleans it for display. When no keyword occurs the
// window is taken from the start of the text.
func Excerpt(text string, keywords []string) string {
	lower := strings.ToLower(text)

	earliest := len(text)
	for _, kw := range keywords {
		if pos := strings.Index(lower, kw); pos != -1 && pos < earliest {
			earliest = pos
		}
	}

	var section string
	if earliest == len(text) {
		section = cutAtRune(text, excerptWindow)
	} else {
		start := earliest
		for i := max(0, earliest-boundaryLookback); i < earliest; i++ {
			if i == 0 {
				start = 0
				break
			}
			if hasBoundaryAt(text, i) {
				start = i + 2
				break
			}
		}
		section = cutAtRune(text[start:], excerptWindow)
	}

	section = cleanText(section)
	section = trimToSentence(section, excerptLimit)
	section = dropLowercaseLead(section)
	return strings.TrimSpace(section)
}

// SourcedAnswer renders the winning chunk's excerpt with its
// provenance suffix.
func (s Scored) SourcedAnswer(keywords []string) string {
	return fmt.Sprintf("%s\n\n(Source: Page %d of knowledge base)",
		Excerpt(s.Chunk.Text, keywords), s.Chunk.Ordinal)
}

// cutAtRune truncates text to at most limit bytes without splitting a
// multibyte rune: the cut backs up to the nearest rune start.
func cutAtRune(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func hasBoundaryAt(text string, i int) bool {
	if i+2 > len(text) {
		return false
	}
	pair := text[i : i+2]
	for _, b := range sentenceBoundaries {
		if pair == b {
			return true
		}
	}
	return false
}

// cleanText fixes layout artifacts of extracted PDF text: runs of
// spaces, odd bullet glyphs, excessive line breaks, ligatures and
// spacing around punctuation.
func cleanText(text string) string {
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = bulletGlyphRe.ReplaceAllString(text, "• ")
	text = bulletBreakRe.ReplaceAllString(text, "\n• ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = strings.ReplaceAll(text, "ﬁ", "fi")
	text = strings.ReplaceAll(text, "ﬂ", "fl")
	text = strings.ReplaceAll(text, "—", "-")
	text = prePunctRe.ReplaceAllString(text, "$1")
	text = periodCapRe.ReplaceAllString(text, ". $1")
	return strings.TrimSpace(text)
}

// trimToSentence truncates text to limit and backs up to the last
// sentence ending, unless that would discard more than half of the
// truncated text.
func trimToSentence(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	text = cutAtRune(text, limit)

	last := -1
	for _, b := range sentenceBoundaries {
		if i := strings.LastIndex(text, b); i > last {
			last = i
		}
	}
	if last > limit/2 {
		text = text[:last+1]
	}
	return strings.TrimSpace(text)
}

// dropLowercaseLead cuts a partial sentence off the front: when the
// excerpt starts mid-sentence, everything before the first uppercase
// letter (or sentence start) is dropped.
func dropLowercaseLead(section string) string {
	runes := []rune(section)
	if len(runes) == 0 || !unicode.IsLower(runes[0]) {
		return section
	}
	for i, r := range runes {
		if unicode.IsUpper(r) {
			return string(runes[i:])
		}
		if i > 1 && hasBoundaryPrefix(string(runes[i-2:i])) {
			return string(runes[i:])
		}
	}
	return section
}

func hasBoundaryPrefix(pair string) bool {
	return pair == ". " || pair == ".\n"
}
