package timeline

import "exercise-tracker/internal/model"

// Vertical stacking constants, in pixels.
const (
	// lanePx is the offset of the first event slot from the exercise's
	// own bar lane.
	lanePx = 24
	// slotStepPx separates events that land on the same side.
	slotStepPx = 18
)

// Placement positions one nested event relative to its exercise row.
// OffsetPx is vertical: negative above the exercise bar lane, positive
// below.
type Placement struct {
	Event    model.Event
	Bar      Bar
	OffsetPx int
}

// StackEvents lays out an exercise's nested events. Events overlapping
// the exercise's own interval alternate above and below its bar lane,
// stepping further out each time a side repeats. Events outside the
// exercise interval form a single descending stack below the lane.
// Placement is strictly in input order; equal intervals keep their
// original sequence.
func StackEvents(ex model.Exercise, w Window) []Placement {
	placements := make([]Placement, 0, len(ex.Events))

	above, below, tail := 0, 0, 0
	nextAbove := true
	for _, ev := range ex.Events {
		bar := LayoutBar(ev.StartDate, ev.EndDate, w)

		var off int
		if overlapsExercise(ev, ex) {
			if nextAbove {
				off = -(lanePx + above*slotStepPx)
				above++
			} else {
				off = lanePx + below*slotStepPx
				below++
			}
			nextAbove = !nextAbove
		} else {
			tail++
			off = lanePx + below*slotStepPx + tail*slotStepPx
		}

		placements = append(placements, Placement{Event: ev, Bar: bar, OffsetPx: off})
	}
	return placements
}

func overlapsExercise(ev model.Event, ex model.Exercise) bool {
	return !ev.StartDate.After(ex.EndDate) && !ev.EndDate.Before(ex.StartDate)
}
