package analytics

import (
	"errors"
	"time"
)

type Range string

const (
	RangeToday     Range = "today"
	RangeYesterday Range = "yesterday"
	RangeLast7Days Range = "last7Days"
	RangeThisMonth Range = "thisMonth"
	RangeLastMonth Range = "lastMonth"
	RangeAll       Range = "all"
	RangeCustom    Range = "custom"
)

var ErrUnknownRange = errors.New("unknown time range")

// Window is [Start, End] or [Start, End) when EndExclusive is set.
type Window struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	EndExclusive bool      `json:"endExclusive"`
}

func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.EndExclusive {
		return t.Before(w.End)
	}
	return !t.After(w.End)
}

func (w Window) Location() *time.Location {
	return w.Start.Location()
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func epoch(loc *time.Location) time.Time {
	return time.Unix(0, 0).In(loc)
}

// Resolve turns a named range into a window relative to now, in now's location. from and to are
// only read for RangeCustom and default to the epoch and now.
func Resolve(r Range, now time.Time, from, to *time.Time) (Window, error) {
	loc := now.Location()
	today := StartOfDay(now)

	switch r {
	case RangeToday:
		return Window{Start: today, End: today.AddDate(0, 0, 1), EndExclusive: true}, nil
	case RangeYesterday:
		return Window{Start: today.AddDate(0, 0, -1), End: today, EndExclusive: true}, nil
	case RangeLast7Days:
		return Window{Start: today.AddDate(0, 0, -7), End: now}, nil
	case RangeThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Start: first, End: now}, nil
	case RangeLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Start: first.AddDate(0, -1, 0), End: first, EndExclusive: true}, nil
	case RangeAll, "":
		// Runs to the end of today so it covers "today" as well; lead dates never fall inside
		// (now, midnight) so this selects the same clients as [epoch, now].
		return Window{Start: epoch(loc), End: today.AddDate(0, 0, 1), EndExclusive: true}, nil
	case RangeCustom:
		w := Window{Start: epoch(loc), End: now}
		if from != nil {
			w.Start = from.In(loc)
		}
		if to != nil {
			w.End = to.In(loc)
		}
		return w, nil
	default:
		return Window{}, ErrUnknownRange
	}
}
