package clause

import "testing"

func TestCompareNatural(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want int
	}{
		{name: "numeric_runs_by_value", a: "4.1(2)", b: "4.1(10)", want: -1},
		{name: "equal", a: "4.1(a)", b: "4.1(a)", want: 0},
		{name: "letters_bytewise", a: "4.1(a)", b: "4.1(b)", want: -1},
		{name: "leading_zeros", a: "4.02", b: "4.2", want: 0},
		{name: "chapter_before_ten", a: "2.1", b: "10.2", want: -1},
		{name: "prefix_shorter_first", a: "4.1", b: "4.1(a)", want: -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompareNatural(tc.a, tc.b)
			if sign(got) != tc.want {
				t.Fatalf("CompareNatural(%q, %q)=%d, want sign %d", tc.a, tc.b, got, tc.want)
			}
			if back := CompareNatural(tc.b, tc.a); sign(back) != -tc.want {
				t.Fatalf("CompareNatural not antisymmetric for (%q, %q)", tc.a, tc.b)
			}
		})
	}
}

func TestLeadingNumber(t *testing.T) {
	cases := []struct {
		number string
		want   float64
	}{
		{number: "10.2", want: 10.2},
		{number: "2.1", want: 2.1},
		{number: "2A.1", want: 2},
		{number: "General", want: 0},
		{number: "", want: 0},
	}
	for _, tc := range cases {
		if got := LeadingNumber(tc.number); got != tc.want {
			t.Fatalf("LeadingNumber(%q)=%v, want %v", tc.number, got, tc.want)
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
