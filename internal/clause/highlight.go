package clause

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlight wraps case-insensitive matches of each keyword in <mark> tags,
// skipping spans that sit inside markup tags. Keywords apply sequentially
// over the accumulated text, so a later keyword can match inside an earlier
// keyword's wrapper; that re-highlighting is accepted behavior.
func Highlight(text string, keywords []string) string {
	out := text
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		out = highlightOne(out, kw)
	}
	return out
}

func highlightOne(text, keyword string) string {
	var b strings.Builder
	b.Grow(len(text))

	inTag := false
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			if end, matched := foldMatch(text[i:], keyword); matched {
				span := text[i : i+end]
				if !strings.ContainsAny(span, "<>") {
					b.WriteString("<mark>")
					b.WriteString(span)
					b.WriteString("</mark>")
					i += end
					continue
				}
			}
		}
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

// foldMatch reports whether s opens with a case-insensitive match of keyword,
// comparing rune by rune so the matched span always ends on a rune boundary,
// and returns the span's byte length. Case folding may change a rune's byte
// length, so keyword byte offsets are never applied to s.
func foldMatch(s, keyword string) (int, bool) {
	i := 0
	for _, kr := range keyword {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != unicode.ToLower(kr) {
			return 0, false
		}
		i += size
	}
	return i, true
}
