package clause

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "14.1", want: "14.1"},
		{name: "spaces_and_parens", raw: "4 .1( a )", want: "4.1a"},
		{name: "sub_clause", raw: "4.1(a)", want: "4.1a"},
		{name: "letter_suffix", raw: "22A.3", want: "22A.3"},
		{name: "tabs_and_newlines", raw: "\t14 .\n1", want: "14.1"},
		{name: "empty", raw: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got != tc.want {
				t.Fatalf("Normalize(%q)=%q, want %q", tc.raw, got, tc.want)
			}
			if again := Normalize(got); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestAnchor(t *testing.T) {
	if got := Anchor("4.1 (a)"); got != "clause-4.1a" {
		t.Fatalf("Anchor=%q, want clause-4.1a", got)
	}
}

func TestKnownSet(t *testing.T) {
	known := KnownSet([]string{"14.1", "4.1 (a)", ""})
	if !known["14.1"] || !known["4.1a"] {
		t.Fatalf("known set missing expected ids: %v", known)
	}
	if known[""] {
		t.Fatal("empty number must not produce a known id")
	}
}
