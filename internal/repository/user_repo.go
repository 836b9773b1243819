package repository

import (
	"context"
	"errors"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Upsert creates or refreshes a profile at login and returns its id.
// Username, avatar and the provider token are overwritten on every login;
// the applied coupon pointer is left alone.
func (r *UserRepository) Upsert(ctx context.Context, discordID, username string, avatarURL *string, accessToken string) (int64, error) {
	query := `
		INSERT INTO user_profiles (discordid, username, avatar_url, access_token, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (discordid)
		DO UPDATE SET username=EXCLUDED.username, avatar_url=EXCLUDED.avatar_url,
			access_token=EXCLUDED.access_token
		RETURNING userid
	`
	var id int64
	err := r.DB.QueryRow(ctx, query, discordID, username, avatarURL, accessToken).Scan(&id)
	return id, err
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	query := `SELECT userid, discordid, username, avatar_url, access_token, applied_coupon_code, created_at
		FROM user_profiles WHERE userid=$1`
	var u model.UserProfile
	err := r.DB.QueryRow(ctx, query, userID).Scan(&u.UserID, &u.DiscordID, &u.Username,
		&u.AvatarURL, &u.AccessToken, &u.AppliedCouponCode, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) SetAppliedCoupon(ctx context.Context, userID int64, code string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE user_profiles SET applied_coupon_code=$1 WHERE userid=$2`, code, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearAppliedCoupon(ctx context.Context, userID int64) error {
	_, err := r.DB.Exec(ctx, `UPDATE user_profiles SET applied_coupon_code=NULL WHERE userid=$1`, userID)
	return err
}
