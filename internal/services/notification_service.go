package services

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

type NotificationRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type NotificationService struct {
	Repo NotificationRepo
}

func NewNotificationService(r NotificationRepo) *NotificationService {
	return &NotificationService{Repo: r}
}

func (s *NotificationService) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to view notifications: %w", ErrAuth)
	}
	out, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Notification{}
	}
	return out, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("sign in first: %w", ErrAuth)
	}
	err := s.Repo.MarkRead(ctx, notificationID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("notification %d: %w", notificationID, ErrNotFound)
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("sign in first: %w", ErrAuth)
	}
	return s.Repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("sign in first: %w", ErrAuth)
	}
	return s.Repo.UnreadCount(ctx, userID)
}
