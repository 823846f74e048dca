package timeline

import (
	"time"

	"exercise-tracker/internal/model"
)

// TargetKind identifies what a click landed on. Kinds double as z-order:
// higher values sit on top and win when regions overlap, so a single
// click resolves to exactly one target.
type TargetKind int

const (
	TargetCell TargetKind = iota
	TargetExercise
	TargetEvent
)

// Click is the resolved result of a pointer press on a chart row. Cell
// clicks carry the day under the cursor ("create here"); bar clicks
// carry the record to open.
type Click struct {
	Kind       TargetKind
	ExerciseID int
	EventID    int
	Date       time.Time
}

// Row is the hit-test model of one rendered exercise row.
type Row struct {
	Exercise model.Exercise
	Window   Window
}

// HitTest resolves a click at xPercent (0-100 across the timeline).
// Event bars are tested first, in reverse order since later events draw
// on top, then the exercise bar, then the cell grid underneath. The
// winning layer swallows the click.
func (r Row) HitTest(xPercent float64) Click {
	for i := len(r.Exercise.Events) - 1; i >= 0; i-- {
		ev := r.Exercise.Events[i]
		bar := LayoutBar(ev.StartDate, ev.EndDate, r.Window)
		if bar.Visible() && bar.Clip().contains(xPercent) {
			return Click{Kind: TargetEvent, ExerciseID: r.Exercise.ID, EventID: ev.ID}
		}
	}

	bar := LayoutBar(r.Exercise.StartDate, r.Exercise.EndDate, r.Window)
	if bar.Visible() && bar.Clip().contains(xPercent) {
		return Click{Kind: TargetExercise, ExerciseID: r.Exercise.ID}
	}

	return Click{
		Kind:       TargetCell,
		ExerciseID: r.Exercise.ID,
		Date:       r.Window.DateAt(xPercent),
	}
}
