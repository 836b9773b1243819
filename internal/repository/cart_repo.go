package repository

import (
	"context"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// Items returns the user's cart joined with current product data, in
// insertion order, plus the computed subtotal.
func (r *CartRepository) Items(ctx context.Context, userID int64) ([]model.CartItem, float64, error) {
	query := `
		SELECT ci.productid, p.name, p.image_url, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.productid = ci.productid
		WHERE ci.userid=$1
		ORDER BY ci.created_at, ci.productid
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []model.CartItem
	var subtotal float64
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.ImageURL, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, 0, err
		}
		it.Subtotal = it.UnitPrice * float64(it.Quantity)
		items = append(items, it)
		subtotal += it.Subtotal
	}
	return items, subtotal, rows.Err()
}

// Upsert merges qty into an existing line or appends a new one.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID int64, qty int) error {
	query := `
		INSERT INTO cart_items (userid, productid, quantity, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (userid, productid)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.DB.Exec(ctx, query, userID, productID, qty)
	return err
}

// SetQuantity sets the exact quantity for a cart line.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID int64, qty int) error {
	query := `UPDATE cart_items SET quantity=$1 WHERE userid=$2 AND productid=$3`
	tag, err := r.DB.Exec(ctx, query, qty, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE userid=$1 AND productid=$2`, userID, productID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE userid=$1`, userID)
	return err
}
