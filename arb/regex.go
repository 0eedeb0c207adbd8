package arb

import (
	"math/rand"
	"regexp"
	"regexp/syntax"
)

// Regex generates strings matching pattern, up to maxLen runes, by walking
// the compiled syntax.Regexp tree and drawing from each node's alternatives
// (spec.md's Regex variant). No corpus example brings a dedicated
// regex-to-generator library, so this walks regexp/syntax directly — the
// standard library's own parser, not a hand-rolled one.
func Regex(pattern string, maxLen int) Arbitrary[string] {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return Empty[string]()
	}
	re = re.Simplify()
	if maxLen <= 0 {
		maxLen = 64
	}
	matcher, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		matcher = nil
	}
	return wrap[string](regexCore{re: re, maxLen: maxLen, matcher: matcher})
}

type regexCore struct {
	re      *syntax.Regexp
	maxLen  int
	matcher *regexp.Regexp
}

func (c regexCore) generate(r *rand.Rand, _ Range) (Pick[string], Shrinker[string]) {
	v := walkRegex(r, c.re, c.maxLen)
	val, s := stringShrinkInit(v, AlphabetAlphaNum)
	return Pick[string]{Value: val}, func(accept bool) (string, bool) {
		nv, ok := s(accept)
		if !ok {
			return "", false
		}
		if !c.matches(nv) {
			// a generic string shrink can leave the regex language; fall
			// back to re-walking the tree instead of proposing an invalid
			// candidate.
			return walkRegex(r, c.re, c.maxLen), true
		}
		return nv, true
	}
}

func (c regexCore) matches(s string) bool {
	if c.matcher == nil {
		return true
	}
	return c.matcher.MatchString(s)
}

func (c regexCore) cornerCases() []Pick[string] {
	return []Pick[string]{{Value: walkRegex(rand.New(rand.NewSource(1)), c.re, c.maxLen)}}
}

func (c regexCore) size() Size {
	return Size{Kind: SizeEstimated, Value: -1, CredibleLo: 0, CredibleHi: -1}
}

func (c regexCore) calculateIndex(Pick[string], int) (int64, bool) { return 0, false }

func (c regexCore) canGenerate(p Pick[string]) bool { return c.matches(p.Value) }

// walkRegex draws one string from re's language, truncating runs and
// repeats so the result never exceeds maxLen runes.
func walkRegex(r *rand.Rand, re *syntax.Regexp, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	switch re.Op {
	case syntax.OpLiteral:
		s := string(re.Rune)
		if len(s) > maxLen {
			s = s[:maxLen]
		}
		return s
	case syntax.OpCharClass:
		if len(re.Rune) == 0 {
			return ""
		}
		pairIdx := r.Intn(len(re.Rune) / 2)
		lo, hi := re.Rune[pairIdx*2], re.Rune[pairIdx*2+1]
		return string(lo + rune(r.Intn(int(hi-lo)+1)))
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return string(rune(0x20 + r.Intn(0x5e)))
	case syntax.OpConcat:
		out := make([]byte, 0, maxLen)
		remaining := maxLen
		for _, sub := range re.Sub {
			if remaining <= 0 {
				break
			}
			piece := walkRegex(r, sub, remaining)
			out = append(out, piece...)
			remaining -= len(piece)
		}
		return string(out)
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return ""
		}
		return walkRegex(r, re.Sub[r.Intn(len(re.Sub))], maxLen)
	case syntax.OpStar, syntax.OpPlus, syntax.OpRepeat:
		min := 0
		if re.Op == syntax.OpPlus {
			min = 1
		}
		if re.Op == syntax.OpRepeat {
			min = re.Min
		}
		max := min + r.Intn(4)
		out := ""
		for i := 0; i < max && len(out) < maxLen; i++ {
			out += walkRegex(r, re.Sub[0], maxLen-len(out))
		}
		return out
	case syntax.OpQuest:
		if r.Intn(2) == 0 {
			return ""
		}
		return walkRegex(r, re.Sub[0], maxLen)
	case syntax.OpCapture:
		if len(re.Sub) == 0 {
			return ""
		}
		return walkRegex(r, re.Sub[0], maxLen)
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return ""
	default:
		return ""
	}
}
