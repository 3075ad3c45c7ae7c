package schema

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/guregu/null.v4"
)

// Interval is the time span each chunk covers. It is either a duration
// literal such as "7 days" or an integer count of the time column's unit.
type Interval struct {
	literal string
	units   null.Int
}

// IntervalOf returns a duration literal interval.
func IntervalOf(literal string) Interval {
	return Interval{literal: literal}
}

// IntervalUnits returns an interval counted in the time column's native unit.
func IntervalUnits(n int64) Interval {
	return Interval{units: null.IntFrom(n)}
}

// IntervalDuration converts d into a microsecond duration literal.
func IntervalDuration(d time.Duration) Interval {
	return IntervalOf(fmt.Sprintf("%d microseconds", d.Microseconds()))
}

// IsLiteral reports whether the interval is a duration literal.
func (i Interval) IsLiteral() bool {
	return !i.units.Valid
}

// Value returns the literal string or the integer count.
func (i Interval) Value() interface{} {
	if i.units.Valid {
		return i.units.Int64
	}
	return i.literal
}

// SQL renders the interval as an argument value.
func (i Interval) SQL() string {
	if i.units.Valid {
		return strconv.FormatInt(i.units.Int64, 10)
	}
	return fmt.Sprintf("INTERVAL '%s'", i.literal)
}

func (i Interval) String() string {
	if i.units.Valid {
		return strconv.FormatInt(i.units.Int64, 10)
	}
	return i.literal
}
