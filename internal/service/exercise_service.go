package service

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "exercise-tracker/internal/errors"
	"exercise-tracker/internal/model"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/timeline"
)

type ExerciseService struct {
	repo     *repository.ExerciseRepository
	notifier *NotificationService
}

type ExerciseInput struct {
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	POC         string    `json:"poc"`
}

func NewExerciseService(repo *repository.ExerciseRepository, notifier *NotificationService) *ExerciseService {
	return &ExerciseService{repo: repo, notifier: notifier}
}

// List returns exercises with nested divisions, teams and events,
// ordered high priority first for the chart.
func (s *ExerciseService) List(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, *apperrors.APIError) {
	exercises, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Printf("list exercises: %v", err)
		return nil, apperrors.Internal("failed to list exercises")
	}
	timeline.SortByPriority(exercises)
	return exercises, nil
}

func (s *ExerciseService) Create(ctx context.Context, userID string, input ExerciseInput) (*model.Exercise, *apperrors.APIError) {
	if apiErr := validateInput(input); apiErr != nil {
		return nil, apiErr
	}

	exercise := model.Exercise{
		Name:        input.Name,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		Priority:    normalizePriority(input.Priority),
		POC:         input.POC,
		Divisions:   []model.Division{},
		Events:      []model.Event{},
	}
	if err := s.repo.Create(ctx, &exercise); err != nil {
		log.Printf("create exercise: %v", err)
		return nil, apperrors.Internal("failed to create exercise")
	}

	s.notifier.Notify(ctx, model.Notification{
		Type:       "exercise",
		Action:     "created",
		EntityID:   exercise.ID,
		EntityName: exercise.Name,
		Message:    fmt.Sprintf("New exercise '%s' created", exercise.Name),
		UserID:     userID,
		Priority:   model.NotificationPriorityNormal,
	})
	return &exercise, nil
}

func (s *ExerciseService) Update(ctx context.Context, userID string, id int, input ExerciseInput) (*model.Exercise, *apperrors.APIError) {
	if apiErr := validateInput(input); apiErr != nil {
		return nil, apiErr
	}

	exercise := model.Exercise{
		ID:          id,
		Name:        input.Name,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		Priority:    normalizePriority(input.Priority),
		POC:         input.POC,
	}
	err := s.repo.Update(ctx, &exercise)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("exercise_not_found", "exercise not found")
	}
	if err != nil {
		log.Printf("update exercise: %v", err)
		return nil, apperrors.Internal("failed to update exercise")
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Printf("reload exercise: %v", err)
		return nil, apperrors.Internal("failed to load exercise")
	}

	s.notifier.Notify(ctx, model.Notification{
		Type:       "exercise",
		Action:     "updated",
		EntityID:   id,
		EntityName: updated.Name,
		Message:    fmt.Sprintf("Exercise '%s' updated", updated.Name),
		UserID:     userID,
		Priority:   model.NotificationPriorityNormal,
	})
	return updated, nil
}

func (s *ExerciseService) Delete(ctx context.Context, userID string, id int) *apperrors.APIError {
	exercise, err := s.repo.Get(ctx, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("exercise_not_found", "exercise not found")
	}
	if err != nil {
		log.Printf("load exercise: %v", err)
		return apperrors.Internal("failed to load exercise")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Printf("delete exercise: %v", err)
		return apperrors.Internal("failed to delete exercise")
	}

	s.notifier.Notify(ctx, model.Notification{
		Type:       "exercise",
		Action:     "deleted",
		EntityID:   id,
		EntityName: exercise.Name,
		Message:    fmt.Sprintf("Exercise '%s' deleted", exercise.Name),
		UserID:     userID,
		Priority:   model.NotificationPriorityCritical,
	})
	return nil
}

func validateInput(input ExerciseInput) *apperrors.APIError {
	if input.Name == "" {
		return apperrors.BadRequest("invalid_name", "name is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return apperrors.BadRequest("invalid_dates", "start_date and end_date are required")
	}
	return nil
}

func normalizePriority(priority string) string {
	switch priority {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		return priority
	default:
		return model.PriorityMedium
	}
}
