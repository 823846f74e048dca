package timeline

import "time"

// Approximate pixels per label character, used only for the minimum
// rendered bar width.
const labelCharPx = 7

// Bar is the horizontal placement of one record inside a window, as
// percentages of the window's total days. Left may be negative and
// Left+Width may exceed 100 for records that straddle the window edges;
// Clip produces the drawable geometry.
type Bar struct {
	Left  float64
	Width float64
}

// LayoutBar positions a date range inside the window. A range shorter
// than one day (including end before start) is clamped to a one day
// duration so the bar never has zero or negative width.
func LayoutBar(start, end time.Time, w Window) Bar {
	offset := daysBetween(w.Start, start)
	duration := daysBetween(start, end)
	if duration < 1 {
		duration = 1
	}

	total := float64(w.TotalDays)
	return Bar{
		Left:  float64(offset) / total * 100,
		Width: float64(duration) / total * 100,
	}
}

// Visible reports whether any part of the bar intersects the window.
// Invisible records still get a row label, just no bar.
func (b Bar) Visible() bool {
	return b.Left+b.Width > 0 && b.Left < 100
}

// Clip clamps the bar to the drawable [0,100] range. Positions of
// sibling bars are unaffected; only the drawn geometry changes.
func (b Bar) Clip() Bar {
	if b.Left < 0 {
		b.Width += b.Left
		b.Left = 0
	}
	if b.Left+b.Width > 100 {
		b.Width = 100 - b.Left
	}
	if b.Width < 0 {
		b.Width = 0
	}
	return b
}

func (b Bar) contains(xPercent float64) bool {
	return b.Width > 0 && xPercent >= b.Left && xPercent < b.Left+b.Width
}

// MinLabelWidth is the smallest pixel width a bar may render at so its
// label stays legible. Rendering only: percentage positions of other
// bars never depend on it.
func MinLabelWidth(label string) int {
	return labelCharPx * len([]rune(label))
}
