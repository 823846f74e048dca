package service

import (
	"context"
	"log"
	"time"

	apperrors "exercise-tracker/internal/errors"
	"exercise-tracker/internal/model"
	"exercise-tracker/internal/repository"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 100
)

// Broadcaster is the push side of the notification pipeline,
// implemented by the websocket hub.
type Broadcaster interface {
	Broadcast(model.Notification)
	RefreshCounts()
}

// NotificationService stores activity-log entries, fans them out over
// the push channel, and serves the paginated unread/read partitions.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  Broadcaster
}

func NewNotificationService(repo *repository.NotificationRepository, hub Broadcaster) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notify stores one notification and broadcasts it. Storage failures
// are logged, not surfaced: a lost log row must not fail the mutation
// that triggered it.
func (s *NotificationService) Notify(ctx context.Context, n model.Notification) {
	n.CreatedAt = time.Now().UTC()
	if n.Priority == "" {
		n.Priority = model.NotificationPriorityNormal
	}
	if err := s.repo.Insert(ctx, &n); err != nil {
		log.Printf("store notification: %v", err)
	}
	s.hub.Broadcast(n)
}

func (s *NotificationService) ListUnread(ctx context.Context, userID string, limit, offset int) ([]model.Notification, *apperrors.APIError) {
	limit, offset = clampPage(limit, offset)
	notifications, err := s.repo.ListUnread(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("list unread notifications: %v", err)
		return nil, apperrors.Internal("failed to list notifications")
	}
	return notifications, nil
}

func (s *NotificationService) ListRead(ctx context.Context, userID string, limit, offset int) ([]model.Notification, *apperrors.APIError) {
	limit, offset = clampPage(limit, offset)
	notifications, err := s.repo.ListRead(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("list read notifications: %v", err)
		return nil, apperrors.Internal("failed to list notifications")
	}
	return notifications, nil
}

// MarkRead records a read mark and queues fresh badge counts so the
// caller's optimistic removal reconciles on the next push.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, notificationID int) (bool, *apperrors.APIError) {
	marked, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		log.Printf("mark notification read: %v", err)
		return false, apperrors.Internal("failed to mark notification read")
	}
	s.hub.RefreshCounts()
	return marked, nil
}

func (s *NotificationService) ClearAll(ctx context.Context, userID string) (int, *apperrors.APIError) {
	cleared, err := s.repo.ClearAll(ctx, userID)
	if err != nil {
		log.Printf("clear notifications: %v", err)
		return 0, apperrors.Internal("failed to clear notifications")
	}
	s.hub.RefreshCounts()
	return cleared, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
