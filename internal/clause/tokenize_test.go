package clause

import "testing"

func TestTokenizePlainTextRoundTrip(t *testing.T) {
	known := KnownSet([]string{"14.1"})
	input := "The Contractor shall proceed with due expedition and without delay."
	tokens := Tokenize(input, known)
	if len(tokens) != 1 || tokens[0].Kind != TokenText {
		t.Fatalf("want single text token, got %+v", tokens)
	}
	if Plain(tokens) != input {
		t.Fatalf("round trip broken: %q", Plain(tokens))
	}
}

func TestTokenizePhrase(t *testing.T) {
	known := KnownSet([]string{"9.9", "4.1(a)"})
	cases := []struct {
		name   string
		input  string
		wantID string
	}{
		{name: "clause_phrase", input: "as set out in Clause 9.9 of these Conditions", wantID: "9.9"},
		{name: "sub_clause_phrase", input: "see Sub-clause 4.1(a) for details", wantID: "4.1a"},
		{name: "sub_clause_capital", input: "see Sub-Clause 4.1(a) for details", wantID: "4.1a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := Tokenize(tc.input, known)
			var refs []Token
			for _, tok := range tokens {
				if tok.Kind == TokenRef {
					refs = append(refs, tok)
				}
			}
			if len(refs) != 1 {
				t.Fatalf("want 1 ref token, got %d in %+v", len(refs), tokens)
			}
			if refs[0].Value != tc.wantID {
				t.Fatalf("ref value=%q, want %q", refs[0].Value, tc.wantID)
			}
			if Plain(tokens) != tc.input {
				t.Fatalf("round trip broken: %q", Plain(tokens))
			}
		})
	}
}

func TestTokenizeUnknownStaysText(t *testing.T) {
	known := KnownSet([]string{"14.1"})
	input := "refer to Clause 9.9 which does not exist"
	tokens := Tokenize(input, known)
	for _, tok := range tokens {
		if tok.Kind == TokenRef {
			t.Fatalf("unknown clause id emitted as ref: %+v", tok)
		}
	}
	if Plain(tokens) != input {
		t.Fatalf("round trip broken: %q", Plain(tokens))
	}
}

func TestTokenizeAnchorElement(t *testing.T) {
	known := KnownSet([]string{"14.1", "4.2"})
	cases := []struct {
		name   string
		input  string
		wantID string
	}{
		{name: "clause_href", input: `pay within the period in <a href="#clause-14.1">Clause 14.1</a>.`, wantID: "14.1"},
		{name: "data_attr_wins", input: `see <a href="#clause-14.1" data-clause-id="4.2">this one</a>.`, wantID: "4.2"},
		{name: "bare_number_href", input: `see <a href="#14.1">the payment clause</a>.`, wantID: "14.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := Tokenize(tc.input, known)
			var ref *Token
			for i := range tokens {
				if tokens[i].Kind == TokenRef {
					if ref != nil {
						t.Fatalf("multiple ref tokens: %+v", tokens)
					}
					ref = &tokens[i]
				}
			}
			if ref == nil {
				t.Fatalf("no ref token in %+v", tokens)
			}
			if ref.Value != tc.wantID {
				t.Fatalf("ref value=%q, want %q", ref.Value, tc.wantID)
			}
			if Plain(tokens) != tc.input {
				t.Fatalf("round trip broken: %q", Plain(tokens))
			}
		})
	}
}

func TestTokenizeDoesNotCrossMarkup(t *testing.T) {
	known := KnownSet([]string{"14.1"})
	// The phrase straddles a structural boundary; it must stay plain text.
	input := "Clause <em>14.1</em> applies"
	tokens := Tokenize(input, known)
	for _, tok := range tokens {
		if tok.Kind == TokenRef {
			t.Fatalf("match crossed a tag boundary: %+v", tok)
		}
	}
	if Plain(tokens) != input {
		t.Fatalf("round trip broken: %q", Plain(tokens))
	}
}

func TestTokenizeBareAnchorInText(t *testing.T) {
	known := KnownSet([]string{"14.1"})
	input := "jump to #14.1 now"
	tokens := Tokenize(input, known)
	if len(tokens) != 3 || tokens[1].Kind != TokenRef || tokens[1].Value != "14.1" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	if tokens[1].Text != "#14.1" {
		t.Fatalf("ref literal=%q, want #14.1", tokens[1].Text)
	}
}

func TestHighlight(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{
			name:     "case_insensitive",
			text:     "Payment terms and payment dates",
			keywords: []string{"payment"},
			want:     "<mark>Payment</mark> terms and <mark>payment</mark> dates",
		},
		{
			name:     "skips_inside_tags",
			text:     `<a href="payment">payment</a>`,
			keywords: []string{"payment"},
			want:     `<a href="payment"><mark>payment</mark></a>`,
		},
		{
			name:     "sequential_reapplication",
			text:     "mark this",
			keywords: []string{"mark this", "this"},
			want:     "<mark>mark <mark>this</mark></mark>",
		},
		{
			name:     "empty_keyword_ignored",
			text:     "unchanged",
			keywords: []string{"  "},
			want:     "unchanged",
		},
		{
			// U+0130 shrinks from two bytes to one under case folding;
			// matching must stay on rune boundaries regardless.
			name:     "multibyte_prefix",
			text:     "İİİİ payment terms",
			keywords: []string{"payment"},
			want:     "İİİİ <mark>payment</mark> terms",
		},
		{
			name:     "multibyte_adjacent_match",
			text:     "İab",
			keywords: []string{"ab"},
			want:     "İ<mark>ab</mark>",
		},
		{
			name:     "multibyte_inside_match",
			text:     "the İstanbul clause",
			keywords: []string{"istanbul"},
			want:     "the <mark>İstanbul</mark> clause",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Highlight(tc.text, tc.keywords)
			if got != tc.want {
				t.Fatalf("Highlight=%q, want %q", got, tc.want)
			}
		})
	}
}
