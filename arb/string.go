package arb

import (
	"math/rand"
	"unicode/utf8"
)

// Common alphabets, kept pure ASCII to avoid encoding surprises.
const (
	AlphabetLower    = "abcdefghijklmnopqrstuvwxyz"
	AlphabetUpper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetAlpha    = AlphabetLower + AlphabetUpper
	AlphabetDigits   = "0123456789"
	AlphabetAlphaNum = AlphabetAlpha + AlphabetDigits
	AlphabetASCII    = AlphabetAlphaNum + " !\"#$%&'()*+,-./:;<=>?@[\\]^_{|}~"
)

type stringCore struct {
	alphabet string
	local    Range
}

func (c stringCore) effective(hint Range) (string, Range) {
	alphabet := c.alphabet
	if alphabet == "" {
		alphabet = AlphabetAlphaNum
	}
	size := c.local
	if size.Min == 0 && size.Max == 0 {
		size.Min, size.Max = 0, 32
	}
	if hint.Min != 0 || hint.Max != 0 {
		size = hint
	}
	if size.Max < size.Min {
		size.Max = size.Min
	}
	return alphabet, size
}

func (c stringCore) generate(r *rand.Rand, hint Range) (Pick[string], Shrinker[string]) {
	alphabet, size := c.effective(hint)
	n := size.Min
	if size.Max > size.Min {
		n += r.Intn(size.Max - size.Min + 1)
	}
	b := make([]rune, n)
	for i := 0; i < n; i++ {
		b[i] = rune(alphabet[r.Intn(len(alphabet))])
	}
	cur := string(b)
	val, s := stringShrinkInit(cur, alphabet)
	return Pick[string]{Value: val}, s
}

func (c stringCore) cornerCases() []Pick[string] {
	alphabet, size := c.effective(Range{})
	out := []Pick[string]{{Value: ""}}
	if size.Max > 0 {
		out = append(out, Pick[string]{Value: string(alphabet[0])})
	}
	return out
}

func (c stringCore) size() Size {
	alphabet, size := c.effective(Range{})
	total := 0.0
	base := float64(len(alphabet))
	for n := size.Min; n <= size.Max; n++ {
		total += pow(base, n)
	}
	return Size{Kind: SizeExact, Value: total}
}

func (c stringCore) calculateIndex(Pick[string], int) (int64, bool) { return 0, false }

func (c stringCore) canGenerate(p Pick[string]) bool {
	alphabet, size := c.effective(Range{})
	n := utf8.RuneCountInString(p.Value)
	if n < size.Min || n > size.Max {
		return false
	}
	for _, ch := range p.Value {
		if indexRune(alphabet, ch) < 0 {
			return false
		}
	}
	return true
}

// String generates strings over alphabet (defaulting to AlphabetAlphaNum)
// with length bounded by local (defaulting to [0, 32]), per spec.md's
// Text variant.
func String(alphabet string, local Range) Arbitrary[string] {
	return wrap[string](stringCore{alphabet: alphabet, local: local})
}

func StringAlpha(local Range) Arbitrary[string]    { return String(AlphabetAlpha, local) }
func StringAlphaNum(local Range) Arbitrary[string] { return String(AlphabetAlphaNum, local) }
func StringDigits(local Range) Arbitrary[string]   { return String(AlphabetDigits, local) }
func StringASCII(local Range) Arbitrary[string]     { return String(AlphabetASCII, local) }

// stringShrinkInit: shorten (drop a suffix), then tame characters toward
// the alphabet's first rune, right to left (mirrors the teacher's
// gen.String shrink heuristic).
func stringShrinkInit(cur, alphabet string) (string, Shrinker[string]) {
	var last string
	queue := make([]string, 0, 64)
	seen := map[string]struct{}{cur: {}}

	push := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		queue = append(queue, s)
	}

	grow := func(base string) {
		queue = queue[:0]
		if len(base) > 0 {
			for newLen := len(base) - 1; newLen >= 0; newLen-- {
				push(base[:newLen])
			}
		}
		if len(base) > 0 {
			target := rune(alphabet[0])
			rs := []rune(base)
			for i := len(rs) - 1; i >= 0; i-- {
				if rs[i] != target {
					rs2 := make([]rune, len(rs))
					copy(rs2, rs)
					rs2[i] = target
					if s := string(rs2); utf8.ValidString(s) {
						push(s)
					}
				}
			}
		}
	}
	grow(cur)

	pop := func() (string, bool) {
		if len(queue) == 0 {
			return "", false
		}
		if shrinkStrategy == StrategyDFS {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			return v, true
		}
		v := queue[0]
		queue = queue[1:]
		return v, true
	}

	return cur, func(accept bool) (string, bool) {
		if accept && last != "" && last != cur {
			cur = last
			grow(cur)
		}
		next, ok := pop()
		if !ok {
			return "", false
		}
		last = next
		return next, true
	}
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}

func indexRune(s string, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}
