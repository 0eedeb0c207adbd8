package arb

// PositiveInt generates ints in [1, max] (max defaulting to 100 when it is
// 0 or negative).
func PositiveInt(max int) Arbitrary[int] {
	if max <= 0 {
		max = 100
	}
	return IntRange(1, max)
}

// NegativeInt generates ints in [-max, -1].
func NegativeInt(max int) Arbitrary[int] {
	if max <= 0 {
		max = 100
	}
	return IntRange(-max, -1)
}

// NonZeroInt generates ints in [-max, max] excluding 0.
func NonZeroInt(max int) Arbitrary[int] {
	if max <= 0 {
		max = 100
	}
	return Filter(IntRange(-max, max), func(v int) bool { return v != 0 }, 50)
}

// Byte generates a single byte's worth of uint8, modeled as an int in
// [0, 255].
func Byte() Arbitrary[int] { return IntRange(0, 255) }

// NonEmptyString generates strings of length >= 1 over alphabet.
func NonEmptyString(alphabet string, maxLen int) Arbitrary[string] {
	if maxLen < 1 {
		maxLen = 32
	}
	return String(alphabet, Range{Min: 1, Max: maxLen})
}

// NonEmptyArray generates slices of length >= 1 from elem.
func NonEmptyArray[T any](elem Arbitrary[T], maxLen int) Arbitrary[[]T] {
	if maxLen < 1 {
		maxLen = 16
	}
	return Array(elem, Range{Min: 1, Max: maxLen})
}

// PairOf combines two arbitraries into one producing (A, B), sugar over
// Tuple2.
func PairOf[A, B any](a Arbitrary[A], b Arbitrary[B]) Arbitrary[Pair[A, B]] { return Tuple2(a, b) }

// Nullable wraps base so it occasionally produces the zero value in place
// of a generated one, modeling an optional/nullable field.
func Nullable[T any](base Arbitrary[T]) Arbitrary[T] {
	return Union(Constant(zeroValue[T]()), base)
}

// Optional is an alias for Nullable, matching languages that prefer that
// name for the same concept.
func Optional[T any](base Arbitrary[T]) Arbitrary[T] { return Nullable(base) }

func zeroValue[T any]() T {
	var z T
	return z
}
