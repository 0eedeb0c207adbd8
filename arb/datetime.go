package arb

import "time"

// Duration generates time.Duration values in [min, max], reusing the
// int64 shrink heuristic on the nanosecond count (spec.md's Duration
// variant).
func Duration(min, max time.Duration) Arbitrary[time.Duration] {
	return Map(Int64Range(int64(min), int64(max)), func(ns int64) time.Duration { return time.Duration(ns) })
}

// DateTime generates time.Time values uniformly between from and until,
// shrinking toward from (spec.md's DateTime variant).
func DateTime(from, until time.Time) Arbitrary[time.Time] {
	return Map(Int64Range(from.UnixNano(), until.UnixNano()), func(ns int64) time.Time {
		return time.Unix(0, ns).UTC()
	})
}

// Date generates calendar dates (midnight UTC) between from and until.
func Date(from, until time.Time) Arbitrary[time.Time] {
	fromDay := from.Truncate(24 * time.Hour)
	untilDay := until.Truncate(24 * time.Hour)
	days := int64(untilDay.Sub(fromDay) / (24 * time.Hour))
	return Map(Int64Range(0, days), func(d int64) time.Time {
		return fromDay.Add(time.Duration(d) * 24 * time.Hour)
	})
}

// Time generates a time-of-day duration offset from midnight, in
// [0, 24h).
func Time() Arbitrary[time.Duration] {
	return Duration(0, 24*time.Hour-time.Nanosecond)
}
