package textutil

import "strings"

// stopWords are common filler words that carry no search signal.
var stopWords = map[string]struct{}{
	"what": {}, "is": {}, "are": {}, "the": {}, "a": {}, "an": {},
	"how": {}, "do": {}, "does": {}, "can": {}, "tell": {}, "me": {},
	"about": {}, "explain": {}, "describe": {}, "in": {}, "to": {},
	"for": {}, "of": {}, "and": {}, "or": {}, "it": {}, "this": {},
	"that": {}, "i": {}, "you": {},
}

// Keywords lowercases text and splits it into maximal runs of ASCII
// letters and digits, dropping tokens of length two or less and stop
// words. Duplicates are kept: occurrence counts matter for scoring.
// The result is never empty; when nothing survives filtering the whole
// lowercased input is returned as a single keyword.
func Keywords(text string) []string {
	lower := strings.ToLower(text)

	var keywords []string
	var tok strings.Builder
	flush := func() {
		if tok.Len() == 0 {
			return
		}
		w := tok.String()
		tok.Reset()
		if len(w) <= 2 {
			return
		}
		if _, ok := stopWords[w]; ok {
			return
		}
		keywords = append(keywords, w)
	}
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			tok.WriteByte(c)
			continue
		}
		flush()
	}
	flush()

	if len(keywords) == 0 {
		return []string{lower}
	}
	return keywords
}
