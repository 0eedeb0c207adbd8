// Package patterns collects common domain-shaped string arbitraries (email
// addresses, UUIDs, IPv4 addresses, URLs) built from arb's String, Set,
// IntRange and Array arbitraries combined with Map and the tuple
// combinators (none uses Regex), the way the teacher's gen/domain package layers
// specific formats atop generic generators.
package patterns

import (
	"fmt"
	"strings"

	"github.com/fluentgo/fluentgo/arb"
)

// Email generates RFC-5321-ish (not fully compliant) email addresses:
// local-part@domain.tld.
func Email() arb.Arbitrary[string] {
	local := arb.NonEmptyString(arb.AlphabetLower+arb.AlphabetDigits+".", 16)
	domain := arb.NonEmptyString(arb.AlphabetLower+arb.AlphabetDigits+"-", 12)
	tld := arb.Set("com", "net", "org", "io", "dev")
	return arb.Map(arb.Tuple3(local, domain, tld), func(t arb.Triple[string, string, string]) string {
		return fmt.Sprintf("%s@%s.%s", strings.Trim(t.First, "."), t.Second, t.Third)
	})
}

// UUID generates RFC-4122 version-4 formatted UUID strings. The version
// and variant nibbles are fixed so every generated value is a syntactically
// valid v4 UUID.
func UUID() arb.Arbitrary[string] {
	group := func(n int) arb.Arbitrary[string] {
		return arb.String("0123456789abcdef", arb.Range{Min: n, Max: n})
	}
	variant := arb.Set("8", "9", "a", "b")
	return arb.Map(arb.Tuple3(
		arb.Tuple3(group(8), group(4), group(3)),
		variant,
		arb.Tuple2(group(3), group(12)),
	), func(t arb.Triple[arb.Triple[string, string, string], string, arb.Pair[string, string]]) string {
		return fmt.Sprintf("%s-%s-4%s-%s%s-%s",
			t.First.First, t.First.Second, t.First.Third, t.Second, t.Third.First, t.Third.Second)
	})
}

// IPv4 generates dotted-quad IPv4 addresses from four octet arbitraries.
func IPv4() arb.Arbitrary[string] {
	octet := arb.IntRange(0, 255)
	return arb.Map(arb.Tuple2(arb.Tuple2(octet, octet), arb.Tuple2(octet, octet)),
		func(p arb.Pair[arb.Pair[int, int], arb.Pair[int, int]]) string {
			return fmt.Sprintf("%d.%d.%d.%d", p.First.First, p.First.Second, p.Second.First, p.Second.Second)
		})
}

// URL generates simple http(s) URLs over a generated host and path.
func URL() arb.Arbitrary[string] {
	scheme := arb.Set("http", "https")
	host := arb.NonEmptyString(arb.AlphabetLower+arb.AlphabetDigits+"-", 12)
	tld := arb.Set("com", "net", "org", "io")
	path := arb.Array(arb.NonEmptyString(arb.AlphabetLower+arb.AlphabetDigits, 8), arb.Range{Min: 0, Max: 3})
	return arb.Map(arb.Tuple3(arb.Tuple3(scheme, host, tld), path, arb.Constant(struct{}{})),
		func(t arb.Triple[arb.Triple[string, string, string], []string, struct{}]) string {
			segs := t.First
			u := fmt.Sprintf("%s://%s.%s", segs.First, segs.Second, segs.Third)
			if len(t.Second) > 0 {
				u += "/" + strings.Join(t.Second, "/")
			}
			return u
		})
}
