package repository

import (
	"context"
	"errors"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	DB *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) GetByDiscordID(ctx context.Context, discordID string) (*model.Admin, error) {
	query := `SELECT adminid, discordid, role, rank, created_at FROM admins WHERE discordid=$1`
	var a model.Admin
	err := r.DB.QueryRow(ctx, query, discordID).Scan(&a.AdminID, &a.DiscordID, &a.Role, &a.Rank, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, adminID int64) (*model.Admin, error) {
	query := `SELECT adminid, discordid, role, rank, created_at FROM admins WHERE adminid=$1`
	var a model.Admin
	err := r.DB.QueryRow(ctx, query, adminID).Scan(&a.AdminID, &a.DiscordID, &a.Role, &a.Rank, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.DB.Query(ctx, `SELECT adminid, discordid, role, rank, created_at FROM admins ORDER BY rank DESC, adminid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.AdminID, &a.DiscordID, &a.Role, &a.Rank, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AdminRepository) Create(ctx context.Context, discordID, role string, rank int) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `INSERT INTO admins (discordid, role, rank) VALUES ($1,$2,$3) RETURNING adminid`,
		discordID, role, rank).Scan(&id)
	return id, err
}

func (r *AdminRepository) Delete(ctx context.Context, adminID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM admins WHERE adminid=$1`, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
