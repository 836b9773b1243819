package services

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

// CanManage is the entire permission model: an admin may act on another
// admin only when strictly outranking them.
func CanManage(actorRank, targetRank int) bool {
	return actorRank > targetRank
}

type AdminRepo interface {
	GetByDiscordID(ctx context.Context, discordID string) (*model.Admin, error)
	GetByID(ctx context.Context, adminID int64) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Create(ctx context.Context, discordID, role string, rank int) (int64, error)
	Delete(ctx context.Context, adminID int64) error
}

type AdminService struct {
	Repo AdminRepo
}

func NewAdminService(r AdminRepo) *AdminService {
	return &AdminService{Repo: r}
}

// Lookup returns the admin record for a discord id, nil for non-admins.
func (s *AdminService) Lookup(ctx context.Context, discordID string) (*model.Admin, error) {
	a, err := s.Repo.GetByDiscordID(ctx, discordID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	return s.Repo.List(ctx)
}

// Create adds an admin. The actor can only grant ranks below their own.
func (s *AdminService) Create(ctx context.Context, actorRank int, discordID, role string, rank int) (int64, error) {
	if discordID == "" || role == "" {
		return 0, fmt.Errorf("discord id and role are required: %w", ErrValidation)
	}
	if rank < 1 {
		return 0, fmt.Errorf("rank must be at least 1: %w", ErrValidation)
	}
	if !CanManage(actorRank, rank) {
		return 0, fmt.Errorf("cannot grant rank %d at rank %d: %w", rank, actorRank, ErrForbidden)
	}
	return s.Repo.Create(ctx, discordID, role, rank)
}

// Delete removes an admin the actor outranks.
func (s *AdminService) Delete(ctx context.Context, actorRank int, adminID int64) error {
	target, err := s.Repo.GetByID(ctx, adminID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("admin %d: %w", adminID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !CanManage(actorRank, target.Rank) {
		return fmt.Errorf("cannot remove %s at rank %d: %w", target.Role, actorRank, ErrForbidden)
	}
	return s.Repo.Delete(ctx, adminID)
}
