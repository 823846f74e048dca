package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exercise-tracker/internal/model"
)

var ErrNotFound = errors.New("record not found")

type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// ExerciseFilter narrows List to exercises that task a division or team
// by name. Empty fields match everything.
type ExerciseFilter struct {
	DivisionName string
	TeamName     string
}

// List returns exercises with their divisions, teams and events loaded.
func (r *ExerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]model.Exercise, error) {
	query := `SELECT id, name, start_date, end_date, description, priority, poc FROM exercises`
	var clauses []string
	var args []interface{}
	if filter.DivisionName != "" {
		clauses = append(clauses, `EXISTS (SELECT 1 FROM divisions d WHERE d.exercise_id = exercises.id AND d.name = ?)`)
		args = append(args, filter.DivisionName)
	}
	if filter.TeamName != "" {
		clauses = append(clauses, `EXISTS (SELECT 1 FROM teams t WHERE t.exercise_id = exercises.id AND t.name = ?)`)
		args = append(args, filter.TeamName)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY start_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		exercise, scanErr := scanExercise(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	for i := range exercises {
		if err := r.loadNested(ctx, &exercises[i]); err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

// Get returns one exercise with nested records, or ErrNotFound.
func (r *ExerciseRepository) Get(ctx context.Context, id int) (*model.Exercise, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, start_date, end_date, description, priority, poc
		 FROM exercises WHERE id = ?`,
		id,
	)
	exercise, err := scanExercise(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadNested(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO exercises (name, start_date, end_date, description, priority, poc)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exercise.Name,
		exercise.StartDate.UTC().Format(time.RFC3339Nano),
		exercise.EndDate.UTC().Format(time.RFC3339Nano),
		exercise.Description,
		exercise.Priority,
		exercise.POC,
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("exercise insert id: %w", err)
	}
	exercise.ID = int(id)
	return nil
}

func (r *ExerciseRepository) Update(ctx context.Context, exercise *model.Exercise) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE exercises
		 SET name = ?, start_date = ?, end_date = ?, description = ?, priority = ?, poc = ?
		 WHERE id = ?`,
		exercise.Name,
		exercise.StartDate.UTC().Format(time.RFC3339Nano),
		exercise.EndDate.UTC().Format(time.RFC3339Nano),
		exercise.Description,
		exercise.Priority,
		exercise.POC,
		exercise.ID,
	)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExerciseRepository) loadNested(ctx context.Context, exercise *model.Exercise) error {
	divisions, err := r.loadDivisions(ctx, exercise.ID)
	if err != nil {
		return err
	}
	exercise.Divisions = divisions

	events, err := r.loadEvents(ctx, exercise.ID)
	if err != nil {
		return err
	}
	exercise.Events = events
	return nil
}

func (r *ExerciseRepository) loadDivisions(ctx context.Context, exerciseID int) ([]model.Division, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, exercise_id, name, learning_objectives
		 FROM divisions WHERE exercise_id = ? ORDER BY id`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	defer rows.Close()

	divisions := make([]model.Division, 0)
	for rows.Next() {
		var d model.Division
		if err := rows.Scan(&d.ID, &d.ExerciseID, &d.Name, &d.LearningObjectives); err != nil {
			return nil, fmt.Errorf("scan division: %w", err)
		}
		divisions = append(divisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate divisions: %w", err)
	}

	for i := range divisions {
		teams, err := r.loadTeams(ctx, divisions[i].ID)
		if err != nil {
			return nil, err
		}
		divisions[i].Teams = teams
	}
	return divisions, nil
}

func (r *ExerciseRepository) loadTeams(ctx context.Context, divisionID int) ([]model.Team, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, division_id, exercise_id, name, poc, status, comments
		 FROM teams WHERE division_id = ? ORDER BY id`,
		divisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]model.Team, 0)
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.DivisionID, &t.ExerciseID, &t.Name, &t.POC, &t.Status, &t.Comments); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

func (r *ExerciseRepository) loadEvents(ctx context.Context, exerciseID int) ([]model.Event, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, exercise_id, name, start_date, end_date, type, priority, status, location, description
		 FROM events WHERE exercise_id = ? ORDER BY start_date, id`,
		exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		var start, end string
		if err := rows.Scan(&ev.ID, &ev.ExerciseID, &ev.Name, &start, &end,
			&ev.Type, &ev.Priority, &ev.Status, &ev.Location, &ev.Description); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if ev.StartDate, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("parse event start_date: %w", err)
		}
		if ev.EndDate, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("parse event end_date: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExercise(s scanner) (*model.Exercise, error) {
	exercise := model.Exercise{}
	var start, end string
	err := s.Scan(
		&exercise.ID,
		&exercise.Name,
		&start,
		&end,
		&exercise.Description,
		&exercise.Priority,
		&exercise.POC,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	if exercise.StartDate, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("parse exercise start_date: %w", err)
	}
	if exercise.EndDate, err = parseTime(end); err != nil {
		return nil, fmt.Errorf("parse exercise end_date: %w", err)
	}
	return &exercise, nil
}
