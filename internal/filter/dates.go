package filter

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Preset names a date window relative to today.
type Preset string

const (
	PresetAll        Preset = "all"
	PresetToday      Preset = "today"
	PresetThisWeek   Preset = "this-week"
	PresetThisMonth  Preset = "this-month"
	PresetThisYear   Preset = "this-year"
	PresetLast30Days Preset = "last-30-days"
	PresetCustom     Preset = "custom"
)

var ErrInvalidRange = errors.New("filter: invalid date range")

// Range is an inclusive date window with a human label for reports.
type Range struct {
	Start civil.Date
	End   civil.Date
	Label string
}

// ResolvePreset turns a preset into a concrete window. start and end are only
// read for PresetCustom, where both are required and start must not be after
// end. Weeks start on Sunday.
func ResolvePreset(p Preset, today, start, end civil.Date) (Range, error) {
	switch p {
	case PresetAll, "":
		d := DefaultCriteria(today)
		return Range{Start: d.Start, End: d.End, Label: "All Time"}, nil
	case PresetToday:
		return Range{Start: today, End: today, Label: "Today"}, nil
	case PresetThisWeek:
		offset := int(today.In(time.UTC).Weekday())
		first := today.AddDays(-offset)
		return Range{Start: first, End: first.AddDays(6), Label: "This Week"}, nil
	case PresetThisMonth:
		first := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
		last := civil.DateOf(time.Date(today.Year, today.Month+1, 0, 0, 0, 0, 0, time.UTC))
		return Range{Start: first, End: last, Label: "This Month"}, nil
	case PresetThisYear:
		return Range{
			Start: civil.Date{Year: today.Year, Month: time.January, Day: 1},
			End:   civil.Date{Year: today.Year, Month: time.December, Day: 31},
			Label: "This Year",
		}, nil
	case PresetLast30Days:
		return Range{Start: today.AddDays(-29), End: today, Label: "Last 30 Days"}, nil
	case PresetCustom:
		if !start.IsValid() || !end.IsValid() {
			return Range{}, fmt.Errorf("%w: custom range needs start and end", ErrInvalidRange)
		}
		if start.After(end) {
			return Range{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
		}
		return Range{Start: start, End: end, Label: start.String() + " to " + end.String()}, nil
	default:
		return Range{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidRange, p)
	}
}
