package model

import "time"

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Team readiness statuses.
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

// Exercise is a top-level tracked activity with a date range, an
// organizational tree of divisions and teams, and nested timeline events.
type Exercise struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	POC         string     `json:"poc"`
	Divisions   []Division `json:"divisions"`
	Events      []Event    `json:"events"`
}

type Division struct {
	ID                 int    `json:"id"`
	ExerciseID         int    `json:"exercise_id"`
	Name               string `json:"name"`
	LearningObjectives string `json:"learning_objectives"`
	Teams              []Team `json:"teams"`
}

type Team struct {
	ID         int    `json:"id"`
	DivisionID int    `json:"division_id"`
	ExerciseID int    `json:"exercise_id"`
	Name       string `json:"name"`
	POC        string `json:"poc"`
	Status     string `json:"status"`
	Comments   string `json:"comments"`
}

// Event is a sub-interval nested within its exercise's timeline.
type Event struct {
	ID          int       `json:"id"`
	ExerciseID  int       `json:"exercise_id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}
