// Command ganttsvg exports the exercise chart as a static SVG. It reads
// exercises as JSON from a file or stdin, the same shape the REST API
// serves, so `curl .../api/exercises | ganttsvg` works directly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/render"
	"exercise-tracker/internal/timeline"
)

func main() {
	dataPath := flag.String("data", "-", "exercises JSON file, or - for stdin")
	outPath := flag.String("out", "chart.svg", "output SVG file")
	stylePath := flag.String("config", "", "optional YAML style file")
	view := flag.String("view", "month", "view granularity: day, week or month")
	zoom := flag.Float64("zoom", 1.0, "zoom level, 0.5 to 3.0")
	anchor := flag.String("date", "", "anchor date (YYYY-MM-DD), defaults to today")
	flag.Parse()

	exercises, err := readExercises(*dataPath)
	if err != nil {
		log.Fatalf("read exercises: %v", err)
	}

	style, err := render.LoadStyle(*stylePath)
	if err != nil {
		log.Fatalf("load style: %v", err)
	}

	g, err := parseView(*view)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now()
	if *anchor != "" {
		now, err = time.Parse("2006-01-02", *anchor)
		if err != nil {
			log.Fatalf("parse date: %v", err)
		}
	}

	timeline.SortByPriority(exercises)
	svg := render.SVG(exercises, g, *zoom, now, style)

	if err := os.WriteFile(*outPath, []byte(svg), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("wrote %s (%d exercises)", *outPath, len(exercises))
}

func readExercises(path string) ([]model.Exercise, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var exercises []model.Exercise
	if err := json.NewDecoder(reader).Decode(&exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func parseView(view string) (timeline.Granularity, error) {
	switch view {
	case "day":
		return timeline.ViewDay, nil
	case "week":
		return timeline.ViewWeek, nil
	case "month":
		return timeline.ViewMonth, nil
	default:
		return "", fmt.Errorf("unknown view %q: want day, week or month", view)
	}
}
