package timeline

import (
	"math"
	"testing"
	"time"

	"exercise-tracker/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLayoutBarScenario(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))

	bar := LayoutBar(date(2024, time.June, 10), date(2024, time.June, 20), w)

	wantLeft := 9.0 / float64(w.TotalDays) * 100
	wantWidth := 10.0 / float64(w.TotalDays) * 100
	if !almostEqual(bar.Left, wantLeft) {
		t.Errorf("expected left %.6f, got %.6f", wantLeft, bar.Left)
	}
	if !almostEqual(bar.Width, wantWidth) {
		t.Errorf("expected width %.6f, got %.6f", wantWidth, bar.Width)
	}
	if !bar.Visible() {
		t.Error("bar inside the window must be visible")
	}
}

func TestLayoutBarInvertedRange(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))

	// End before start clamps to a one day duration, never negative width.
	bar := LayoutBar(date(2024, time.June, 20), date(2024, time.June, 10), w)
	want := 1.0 / float64(w.TotalDays) * 100
	if !almostEqual(bar.Width, want) {
		t.Errorf("expected one-day width %.6f, got %.6f", want, bar.Width)
	}
}

func TestLayoutBarOutsideWindow(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))

	past := LayoutBar(date(2020, time.January, 1), date(2020, time.March, 1), w)
	if past.Visible() {
		t.Error("bar entirely before the window must not be visible")
	}
	future := LayoutBar(date(2030, time.January, 1), date(2030, time.March, 1), w)
	if future.Visible() {
		t.Error("bar entirely after the window must not be visible")
	}
}

func TestBarClip(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))

	// Starts before the window, ends inside.
	bar := LayoutBar(date(2024, time.May, 1), date(2024, time.July, 1), w)
	clipped := bar.Clip()
	if clipped.Left != 0 {
		t.Errorf("expected clipped left 0, got %.6f", clipped.Left)
	}
	if !almostEqual(clipped.Left+clipped.Width, bar.Left+bar.Width) {
		t.Errorf("clipping the left edge must not move the right edge")
	}

	// Extends past the window end.
	bar = LayoutBar(date(2026, time.May, 1), date(2027, time.January, 1), w)
	clipped = bar.Clip()
	if clipped.Left+clipped.Width > 100+1e-9 {
		t.Errorf("clipped bar extends past 100%%: %.6f", clipped.Left+clipped.Width)
	}
}

func TestMinLabelWidth(t *testing.T) {
	if MinLabelWidth("") != 0 {
		t.Error("empty label needs no width")
	}
	if MinLabelWidth("Exercise Alpha") <= MinLabelWidth("Alpha") {
		t.Error("longer labels need more width")
	}
}

func TestStackEventsAlternatesSides(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))
	ex := model.Exercise{
		ID:        1,
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.August, 1),
		Events: []model.Event{
			{ID: 1, StartDate: date(2024, time.June, 5), EndDate: date(2024, time.June, 10)},
			{ID: 2, StartDate: date(2024, time.June, 7), EndDate: date(2024, time.June, 12)},
			{ID: 3, StartDate: date(2024, time.June, 20), EndDate: date(2024, time.June, 25)},
			{ID: 4, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 5)},
		},
	}

	placements := StackEvents(ex, w)
	if len(placements) != 4 {
		t.Fatalf("expected 4 placements, got %d", len(placements))
	}
	for i, p := range placements {
		if p.Event.ID != ex.Events[i].ID {
			t.Fatalf("placement order must follow input order, got id %d at %d", p.Event.ID, i)
		}
	}

	// Overlapping events alternate: above, below, above.
	if placements[0].OffsetPx >= 0 {
		t.Errorf("first overlapping event goes above, got %d", placements[0].OffsetPx)
	}
	if placements[1].OffsetPx <= 0 {
		t.Errorf("second overlapping event goes below, got %d", placements[1].OffsetPx)
	}
	if placements[2].OffsetPx >= 0 {
		t.Errorf("third overlapping event goes above, got %d", placements[2].OffsetPx)
	}
	// Second event on the same side steps further out.
	if placements[2].OffsetPx >= placements[0].OffsetPx {
		t.Errorf("repeat slot on the above side must step outward: %d vs %d",
			placements[2].OffsetPx, placements[0].OffsetPx)
	}
}

func TestStackEventsNonOverlappingDescend(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))
	ex := model.Exercise{
		ID:        1,
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
		Events: []model.Event{
			{ID: 1, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 5)},
			{ID: 2, StartDate: date(2024, time.August, 1), EndDate: date(2024, time.August, 5)},
		},
	}

	placements := StackEvents(ex, w)
	if placements[0].OffsetPx <= 0 || placements[1].OffsetPx <= 0 {
		t.Fatal("non-overlapping events stack below the lane")
	}
	if placements[1].OffsetPx <= placements[0].OffsetPx {
		t.Errorf("stack must descend: %d then %d", placements[0].OffsetPx, placements[1].OffsetPx)
	}
}

func TestHitTestLayering(t *testing.T) {
	w := ComputeWindow(ViewMonth, date(2024, time.June, 15))
	row := Row{
		Window: w,
		Exercise: model.Exercise{
			ID:        7,
			StartDate: date(2024, time.June, 10),
			EndDate:   date(2024, time.December, 10),
			Events: []model.Event{
				{ID: 42, StartDate: date(2024, time.July, 1), EndDate: date(2024, time.July, 20)},
			},
		},
	}

	exBar := LayoutBar(row.Exercise.StartDate, row.Exercise.EndDate, w)
	evBar := LayoutBar(row.Exercise.Events[0].StartDate, row.Exercise.Events[0].EndDate, w)

	// A point inside the event bar routes to the event, even though the
	// exercise bar and the cell grid are underneath.
	click := row.HitTest(evBar.Left + evBar.Width/2)
	if click.Kind != TargetEvent || click.EventID != 42 {
		t.Fatalf("expected event click, got kind %d event %d", click.Kind, click.EventID)
	}

	// A point on the exercise bar but outside any event routes to the bar.
	click = row.HitTest(exBar.Left + 0.01)
	if click.Kind != TargetExercise || click.ExerciseID != 7 {
		t.Fatalf("expected exercise click, got kind %d", click.Kind)
	}

	// A point outside every bar falls through to the cell grid with a date.
	click = row.HitTest(1.0)
	if click.Kind != TargetCell {
		t.Fatalf("expected cell click, got kind %d", click.Kind)
	}
	if click.Date.Before(w.Start) || click.Date.After(w.End) {
		t.Fatalf("cell click date out of window: %s", click.Date)
	}
}
