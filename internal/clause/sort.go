package clause

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumberRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`)

// LeadingNumber parses the leading numeric portion of a clause number for
// chapter ordering ("10.2" -> 10.2, "2A.1" -> 2). Malformed numbers order as 0.
func LeadingNumber(number string) float64 {
	m := leadingNumberRe.FindString(strings.TrimSpace(number))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// CompareNatural compares two clause numbers with numeric-aware ordering:
// digit runs compare by value, everything else byte-wise. "4.1(2)" sorts
// before "4.1(10)".
func CompareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, ib := i, j
			for ia < len(a) && isDigit(a[ia]) {
				ia++
			}
			for ib < len(b) && isDigit(b[ib]) {
				ib++
			}
			na := strings.TrimLeft(a[i:ia], "0")
			nb := strings.TrimLeft(b[j:ib], "0")
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			i, j = ia, ib
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
