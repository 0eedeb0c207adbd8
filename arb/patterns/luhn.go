package patterns

import (
	"strconv"
	"strings"

	"github.com/fluentgo/fluentgo/arb"
)

// LuhnID generates digit strings of the given length whose final digit is
// a valid Luhn (mod-10) check digit, e.g. for fabricating test card/account
// numbers. Root digits come from an Array arbitrary and the check digit is
// recomputed by Map on every shrink step, so shrinking the root digits
// (toward zero) always yields another valid Luhn string for free — the
// same generate-root-then-append-checksum shape a teacher check-digit
// generator uses for a different identifier format, but built on Map's
// existing shrink-preserving property instead of a bespoke shrinker.
func LuhnID(length int) arb.Arbitrary[string] {
	if length < 2 {
		length = 16
	}
	root := arb.Array(arb.IntRange(0, 9), arb.Range{Min: length - 1, Max: length - 1})
	return arb.Map(root, func(digits []int) string {
		return appendLuhnCheckDigit(digits)
	})
}

func appendLuhnCheckDigit(root []int) string {
	var b strings.Builder
	sum := 0
	double := true // rightmost of the root digits doubles first (it becomes position n-1 from the right)
	doubled := make([]int, len(root))
	for i := len(root) - 1; i >= 0; i-- {
		d := root[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		doubled[i] = d
		sum += d
		double = !double
	}
	check := (10 - sum%10) % 10
	for _, d := range root {
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteString(strconv.Itoa(check))
	return b.String()
}

// ValidLuhn reports whether s is a string of digits satisfying the Luhn
// checksum.
func ValidLuhn(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return len(s) > 0 && sum%10 == 0
}
