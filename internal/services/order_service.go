package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

// transitions is the whole state machine: pending and processing can be
// cancelled, completed and cancelled are terminal.
var transitions = map[string][]string{
	model.StatusPending:    {model.StatusProcessing, model.StatusCancelled},
	model.StatusProcessing: {model.StatusCompleted, model.StatusCancelled},
}

// CanTransition reports whether from -> to is a valid order move.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func statusMessage(displayID, to string) string {
	switch to {
	case model.StatusProcessing:
		return fmt.Sprintf("Your order %s is now being processed.", displayID)
	case model.StatusCompleted:
		return fmt.Sprintf("Your order %s has been delivered.", displayID)
	case model.StatusCancelled:
		return fmt.Sprintf("Your order %s has been cancelled.", displayID)
	}
	return fmt.Sprintf("Your order %s was updated.", displayID)
}

type OrderStore interface {
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	MoveStatus(ctx context.Context, orderID int64, from, to string, adminID int64, delivery *string, message string) (*model.Notification, error)
	ListByStatus(ctx context.Context, status string) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	History(ctx context.Context, orderID int64) ([]model.StatusChange, error)
}

type NotificationPublisher interface {
	Publish(n model.Notification)
}

type OrderService struct {
	Repo OrderStore
	Push NotificationPublisher
}

func NewOrderService(r OrderStore, p NotificationPublisher) *OrderService {
	return &OrderService{Repo: r, Push: p}
}

// Process moves a pending order into processing.
func (s *OrderService) Process(ctx context.Context, orderID, adminID int64) error {
	return s.move(ctx, orderID, adminID, model.StatusProcessing, nil)
}

// Complete delivers the order: delivery details are required and are
// attached in the same move.
func (s *OrderService) Complete(ctx context.Context, orderID, adminID int64, deliveryDetails string) error {
	if deliveryDetails == "" {
		return fmt.Errorf("delivery details are required: %w", ErrValidation)
	}
	return s.move(ctx, orderID, adminID, model.StatusCompleted, &deliveryDetails)
}

// Cancel works from pending or processing.
func (s *OrderService) Cancel(ctx context.Context, orderID, adminID int64) error {
	return s.move(ctx, orderID, adminID, model.StatusCancelled, nil)
}

func (s *OrderService) move(ctx context.Context, orderID, adminID int64, to string, delivery *string) error {
	o, err := s.Repo.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("cannot move order %s from %s to %s: %w", o.DisplayID, o.Status, to, ErrValidation)
	}

	n, err := s.Repo.MoveStatus(ctx, orderID, o.Status, to, adminID, delivery, statusMessage(o.DisplayID, to))
	if errors.Is(err, repository.ErrConflict) {
		log.Printf("data-integrity: %v", err)
		return fmt.Errorf("%v: %w", err, ErrConflict)
	}
	if err != nil {
		return err
	}

	// after commit only; a subscriber that misses this still sees the
	// row through the feed endpoint
	s.Push.Publish(*n)
	return nil
}

// ListByStatus is the admin queue view.
func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	switch status {
	case model.StatusPending, model.StatusProcessing, model.StatusCompleted, model.StatusCancelled:
	default:
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	return s.Repo.ListByStatus(ctx, status)
}

// ListForUser returns the caller's own orders.
func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to view orders: %w", ErrAuth)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// GetForUser returns one order, hiding other users' orders entirely.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	o, err := s.get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return o, nil
}

// GetAny is the admin detail view.
func (s *OrderService) GetAny(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.get(ctx, orderID)
}

func (s *OrderService) get(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := s.Repo.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return o, err
}

// History exposes the append-only status log (admin view).
func (s *OrderService) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	return s.Repo.History(ctx, orderID)
}
