package clause

import (
	"regexp"
	"strings"
)

type TokenKind string

const (
	TokenText TokenKind = "text"
	TokenRef  TokenKind = "ref"
)

// Token is one parsed span of clause body text. Text always holds the literal
// source span, so concatenating Text across a token stream reconstructs the
// input exactly. For ref tokens Value is the canonical clause id the span
// points at; for text tokens Value equals Text.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"`
	Text  string    `json:"text"`
}

// numberPattern matches clause-number shapes: digits, optional single letter,
// repeated ".digits[letter]" groups, optional trailing "(alnum)".
const numberPattern = `[0-9]+[A-Za-z]?(?:\.[0-9]+[A-Za-z]?)*(?:\([A-Za-z0-9]+\))?`

var (
	anchorElementRe = regexp.MustCompile(`<a\b[^>]*>[^<]*</a>`)
	clauseIDAttrRe  = regexp.MustCompile(`data-clause-id="([^"]*)"`)
	hrefAttrRe      = regexp.MustCompile(`href="([^"]*)"`)
	bareAnchorRe    = regexp.MustCompile(`#(` + numberPattern + `)`)
	bareNumberRe    = regexp.MustCompile(`^` + numberPattern + `$`)
	phraseRe        = regexp.MustCompile(`(?:Clause|Sub-[Cc]lause)\s+(` + numberPattern + `)`)
)

// Tokenize scans clause body text (possibly carrying embedded markup) and
// produces a token stream for rendering and click-navigation. A candidate
// only becomes a ref token when its canonical id is in the known-id set;
// everything else, including references that would straddle a markup
// boundary, stays plain text.
func Tokenize(input string, known map[string]bool) []Token {
	var tokens []Token

	refSpans := anchorRefSpans(input, known)
	pos := 0
	for _, sp := range refSpans {
		if sp.start > pos {
			tokens = append(tokens, tokenizeGap(input[pos:sp.start], known)...)
		}
		tokens = append(tokens, Token{Kind: TokenRef, Value: sp.id, Text: input[sp.start:sp.end]})
		pos = sp.end
	}
	if pos < len(input) {
		tokens = append(tokens, tokenizeGap(input[pos:], known)...)
	}

	return mergeText(tokens)
}

type refSpan struct {
	start, end int
	id         string
}

// anchorRefSpans resolves whole anchor elements. Candidate ids come, in
// priority order, from an explicit data-clause-id attribute, an
// "(#)clause-<id>" href, or a bare "#<number>" href.
func anchorRefSpans(input string, known map[string]bool) []refSpan {
	var spans []refSpan
	for _, loc := range anchorElementRe.FindAllStringIndex(input, -1) {
		elem := input[loc[0]:loc[1]]
		id := anchorCandidateID(elem)
		if id == "" || !known[id] {
			continue
		}
		spans = append(spans, refSpan{start: loc[0], end: loc[1], id: id})
	}
	return spans
}

func anchorCandidateID(elem string) string {
	if m := clauseIDAttrRe.FindStringSubmatch(elem); m != nil {
		return Normalize(m[1])
	}
	m := hrefAttrRe.FindStringSubmatch(elem)
	if m == nil {
		return ""
	}
	href := strings.TrimPrefix(m[1], "#")
	if rest, ok := strings.CutPrefix(href, "clause-"); ok {
		return Normalize(rest)
	}
	if bareNumberRe.MatchString(href) {
		return Normalize(href)
	}
	return ""
}

// tokenizeGap handles text between resolved anchors. Markup tags pass through
// as literal text and reference phrases are only matched inside tag-free
// regions, so a match can never cross a structural boundary.
func tokenizeGap(gap string, known map[string]bool) []Token {
	var tokens []Token
	pos := 0
	for pos < len(gap) {
		open := strings.IndexByte(gap[pos:], '<')
		if open < 0 {
			tokens = append(tokens, tokenizeTextRegion(gap[pos:], known)...)
			break
		}
		open += pos
		if open > pos {
			tokens = append(tokens, tokenizeTextRegion(gap[pos:open], known)...)
		}
		closeIdx := strings.IndexByte(gap[open:], '>')
		if closeIdx < 0 {
			// Unterminated tag; emit the rest verbatim.
			tokens = append(tokens, textToken(gap[open:]))
			break
		}
		tag := gap[open : open+closeIdx+1]
		tokens = append(tokens, textToken(tag))
		pos = open + closeIdx + 1
	}
	return tokens
}

// tokenizeTextRegion scans a tag-free region for bare "#<number>" anchors and
// "Clause <number>" phrases, bare anchors taking priority at equal offsets.
func tokenizeTextRegion(region string, known map[string]bool) []Token {
	var tokens []Token
	pos := 0
	for pos < len(region) {
		rest := region[pos:]
		aLoc := bareAnchorRe.FindStringSubmatchIndex(rest)
		pLoc := phraseRe.FindStringSubmatchIndex(rest)

		loc := aLoc
		if loc == nil || (pLoc != nil && pLoc[0] < loc[0]) {
			loc = pLoc
		}
		if loc == nil {
			tokens = append(tokens, textToken(rest))
			break
		}

		id := Normalize(rest[loc[2]:loc[3]])
		if !known[id] {
			// Unresolvable candidate: keep it as plain text and move past it.
			tokens = append(tokens, textToken(rest[:loc[1]]))
			pos += loc[1]
			continue
		}
		if loc[0] > 0 {
			tokens = append(tokens, textToken(rest[:loc[0]]))
		}
		tokens = append(tokens, Token{Kind: TokenRef, Value: id, Text: rest[loc[0]:loc[1]]})
		pos += loc[1]
	}
	return tokens
}

func textToken(s string) Token {
	return Token{Kind: TokenText, Value: s, Text: s}
}

func mergeText(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		if t.Kind == TokenText && len(out) > 0 && out[len(out)-1].Kind == TokenText {
			out[len(out)-1].Value += t.Value
			out[len(out)-1].Text += t.Text
			continue
		}
		out = append(out, t)
	}
	return out
}

// Plain concatenates a token stream back into its source text.
func Plain(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
