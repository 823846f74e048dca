package render

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/timeline"
)

func testExercise() model.Exercise {
	return model.Exercise{
		ID:        1,
		Name:      "Iron <Falcon>",
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		Priority:  "high",
		Divisions: []model.Division{{
			Name: "1st",
			Teams: []model.Team{
				{Name: "A", Status: model.StatusGreen},
				{Name: "B", Status: model.StatusYellow},
			},
		}},
		Events: []model.Event{{
			Name:      "Rehearsal",
			StartDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
		}},
	}
}

func TestSVGContainsChartElements(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svg := SVG([]model.Exercise{testExercise()}, timeline.ViewMonth, 1.0, now, DefaultStyle())

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Fatal("missing XML declaration")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("missing closing svg tag")
	}
	// Name is escaped and carries the readiness summary (1.5/2 = 75%).
	if !strings.Contains(svg, "Iron &lt;Falcon&gt; (75%, full support)") {
		t.Fatalf("missing escaped row label with readiness:\n%s", svg)
	}
	// High priority picks the priority color for the exercise bar.
	if !strings.Contains(svg, `fill="#d93025"`) {
		t.Fatal("missing high priority bar color")
	}
	// One header per month over two years.
	if got := strings.Count(svg, `class="hdr"`); got != 25 {
		t.Fatalf("expected 25 header labels, got %d", got)
	}
	if !strings.Contains(svg, ">Jun 2024<") {
		t.Fatal("missing first month header label")
	}
}

func TestSVGSkipsOffWindowBars(t *testing.T) {
	ex := testExercise()
	ex.Priority = "medium"
	ex.StartDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ex.EndDate = time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	ex.Events = nil
	ex.Divisions = nil

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svg := SVG([]model.Exercise{ex}, timeline.ViewMonth, 1.0, now, DefaultStyle())

	// The row label still renders, the bar does not.
	if !strings.Contains(svg, "Iron &lt;Falcon&gt;") {
		t.Fatal("missing row label for off-window exercise")
	}
	if strings.Contains(svg, `fill="#4285f4"`) {
		t.Fatal("off-window exercise must not render a bar")
	}
}

func TestSVGShortBarKeepsLabelWidth(t *testing.T) {
	ex := testExercise()
	ex.Divisions = nil
	ex.Events = nil
	// One day inside a two-year window would round down to a sliver.
	ex.StartDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	ex.EndDate = time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svg := SVG([]model.Exercise{ex}, timeline.ViewMonth, 1.0, now, DefaultStyle())

	want := fmt.Sprintf(`width="%d" height="%d"`, timeline.MinLabelWidth(ex.Name), DefaultStyle().Layout.BarHeight)
	if !strings.Contains(svg, want) {
		t.Fatalf("expected the bar floored to its label width (%s):\n%s", want, svg)
	}
}

func TestLoadStyleOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/style.yaml"
	yaml := "colors:\n  bar: \"#123456\"\nlayout:\n  width: 800\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write style file: %v", err)
	}

	style, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("load style: %v", err)
	}
	if style.Colors.Bar != "#123456" {
		t.Fatalf("expected overridden bar color, got %s", style.Colors.Bar)
	}
	if style.Layout.Width != 800 {
		t.Fatalf("expected overridden width, got %d", style.Layout.Width)
	}
	// Untouched fields keep their defaults.
	if style.Colors.Background != "#ffffff" {
		t.Fatalf("expected default background, got %s", style.Colors.Background)
	}
	if style.Layout.RowHeight != 96 {
		t.Fatalf("expected default row height, got %d", style.Layout.RowHeight)
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	if _, err := LoadStyle("/nonexistent/style.yaml"); err == nil {
		t.Fatal("expected error for missing style file")
	}
}
