package repository

import (
	"context"
	"errors"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponRepository struct {
	DB *pgxpool.Pool
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{DB: db}
}

// GetByCode looks up a coupon. Callers upper-case the code first; codes
// are stored upper-cased.
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT couponid, code, discount_pct, max_uses, times_used, is_active, created_at
		FROM coupons WHERE code=$1`
	var c model.Coupon
	err := r.DB.QueryRow(ctx, query, code).Scan(&c.CouponID, &c.Code, &c.DiscountPct,
		&c.MaxUses, &c.TimesUsed, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.DB.Query(ctx, `SELECT couponid, code, discount_pct, max_uses, times_used, is_active, created_at
		FROM coupons ORDER BY couponid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.CouponID, &c.Code, &c.DiscountPct, &c.MaxUses,
			&c.TimesUsed, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CouponRepository) Create(ctx context.Context, c *model.Coupon) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `INSERT INTO coupons (code, discount_pct, max_uses, is_active)
		VALUES ($1,$2,$3,$4) RETURNING couponid`,
		c.Code, c.DiscountPct, c.MaxUses, c.IsActive).Scan(&id)
	return id, err
}

func (r *CouponRepository) SetActive(ctx context.Context, couponID int64, active bool) error {
	tag, err := r.DB.Exec(ctx, `UPDATE coupons SET is_active=$1 WHERE couponid=$2`, active, couponID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
