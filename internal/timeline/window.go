// Package timeline computes the geometry of the Gantt-style exercise
// chart: the visible date window per view granularity, header cells,
// horizontal bar placement as percentages of the window, vertical
// stacking of nested events, and derived readiness scores. Everything
// here is pure computation over the model types; rendering and data
// fetching live elsewhere.
package timeline

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Granularity is the timeline zoom tier controlling header density and
// the lookahead window.
type Granularity string

const (
	ViewDay   Granularity = "day"
	ViewWeek  Granularity = "week"
	ViewMonth Granularity = "month"
)

// Below this zoom level month headers switch to the short year form so
// labels stop crowding each other.
const compactLabelZoom = 0.7

// Window is the visible date range of the chart. It is derived from the
// granularity and the current date, never stored.
type Window struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// ComputeWindow derives the chart window for a granularity anchored at
// now: day view spans three months from the start of the current month,
// week view six months from the start of the week containing it, month
// view two years.
func ComputeWindow(g Granularity, now time.Time) Window {
	monthStart := startOfMonth(now)

	var start, end time.Time
	switch g {
	case ViewDay:
		start = monthStart
		end = start.AddDate(0, 3, 0)
	case ViewWeek:
		start = startOfWeek(monthStart)
		end = start.AddDate(0, 6, 0)
	default:
		start = monthStart
		end = start.AddDate(2, 0, 0)
	}

	return Window{Start: start, End: end, TotalDays: daysBetween(start, end)}
}

// Headers returns the header cell dates for the window, one per day,
// week or month. Both endpoints are included when they fall on a step.
func (w Window) Headers(g Granularity) []time.Time {
	var step func(time.Time) time.Time
	switch g {
	case ViewDay:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case ViewWeek:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	default:
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	}

	headers := make([]time.Time, 0, w.TotalDays)
	for d := w.Start; !d.After(w.End); d = step(d) {
		headers = append(headers, d)
	}
	return headers
}

// DateAt maps a horizontal position (0-100 across the timeline) back to
// the day under it, clamped into the window.
func (w Window) DateAt(xPercent float64) time.Time {
	days := int(xPercent / 100 * float64(w.TotalDays))
	if days < 0 {
		days = 0
	}
	if days >= w.TotalDays {
		days = w.TotalDays - 1
	}
	return w.Start.AddDate(0, 0, days)
}

// HeaderLabel formats one header cell: the day-of-month digit for day
// view, a "Jun 2 - 8" range for week view, "Jun 2006" for month view
// (abbreviated to "Jun 06" at low zoom).
func HeaderLabel(d time.Time, g Granularity, zoom float64) string {
	switch g {
	case ViewDay:
		return strconv.Itoa(d.Day())
	case ViewWeek:
		return fmt.Sprintf("%s - %d", d.Format("Jan 2"), endOfWeek(d).Day())
	default:
		if zoom < compactLabelZoom {
			return d.Format("Jan 06")
		}
		return d.Format("Jan 2006")
	}
}

// MonthLabel returns the super-label shown above first-of-month cells in
// day view, and "" everywhere else.
func MonthLabel(d time.Time, g Granularity) string {
	if g == ViewDay && d.Day() == 1 {
		return d.Format("January 2006")
	}
	return ""
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates to the preceding Sunday.
func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}

// daysBetween counts whole days from a to b, ignoring time of day.
// Rounding absorbs DST offsets in zoned inputs.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
