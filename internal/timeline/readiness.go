package timeline

import (
	"cmp"
	"math"
	"slices"

	"exercise-tracker/internal/model"
)

// SupportBand classifies a readiness percentage for display.
type SupportBand string

const (
	SupportFull    SupportBand = "full support"
	SupportLimited SupportBand = "limited"
	SupportUnable  SupportBand = "unable"
)

// Readiness derives the aggregate team readiness of an exercise as a
// 0-100 percentage: green counts 1, yellow 0.5, red 0. ok is false when
// the exercise has no teams at all. The value is display-only and never
// persisted.
func Readiness(ex model.Exercise) (percent int, band SupportBand, ok bool) {
	var score float64
	var teams int
	for _, div := range ex.Divisions {
		for _, team := range div.Teams {
			teams++
			switch team.Status {
			case model.StatusGreen:
				score++
			case model.StatusYellow:
				score += 0.5
			}
		}
	}
	if teams == 0 {
		return 0, "", false
	}

	percent = int(math.Round(100 * score / float64(teams)))
	switch {
	case percent >= 75:
		band = SupportFull
	case percent >= 50:
		band = SupportLimited
	default:
		band = SupportUnable
	}
	return percent, band, true
}

// SortByPriority orders exercises high before medium before low. The
// sort is stable: equal priorities keep their input order. A missing
// priority counts as medium.
func SortByPriority(exercises []model.Exercise) {
	slices.SortStableFunc(exercises, func(a, b model.Exercise) int {
		return cmp.Compare(priorityRank(a.Priority), priorityRank(b.Priority))
	})
}

func priorityRank(priority string) int {
	switch priority {
	case model.PriorityHigh:
		return 1
	case model.PriorityLow:
		return 3
	default:
		return 2
	}
}
