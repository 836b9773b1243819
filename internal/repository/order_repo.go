package repository

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// NewOrder carries everything ProcessOrder needs to create a pending
// order: identity, totals and the frozen item snapshots.
type NewOrder struct {
	DisplayID      string
	UserID         int64
	Username       string
	DiscordID      string
	Subtotal       float64
	DiscountAmount float64
	Total          float64
	CouponCode     *string
	Items          []NewOrderItem
}

type NewOrderItem struct {
	ProductID int64
	Name      string
	ImageURL  *string
	Quantity  int
	UnitPrice float64
}

// ProcessOrder runs the whole order placement in one transaction:
// stock decrements (guarded per item), coupon usage increment (guarded),
// order + item snapshots + initial history row, cart and coupon-pointer
// clear. Any guard failing rolls the whole thing back, leaving cart and
// applied coupon untouched.
func (r *OrderRepository) ProcessOrder(ctx context.Context, no NewOrder) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	stockQuery := `
		UPDATE products
		SET stock_qty = CASE WHEN stock_type='LIMITED' THEN stock_qty - $1 ELSE stock_qty END
		WHERE productid=$2 AND is_active = TRUE
			AND (stock_type <> 'LIMITED' OR stock_qty >= $1)
	`
	for _, it := range no.Items {
		tag, err := tx.Exec(ctx, stockQuery, it.Quantity, it.ProductID)
		if err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// the guard rejects for two reasons; a removed or
			// deactivated product must not read as a stock problem
			var active bool
			err := tx.QueryRow(ctx, `SELECT is_active FROM products WHERE productid=$1`, it.ProductID).Scan(&active)
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
			}
			if err != nil {
				return 0, fmt.Errorf("check product: %w", err)
			}
			if !active {
				return 0, fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
			}
			return 0, fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
	}

	if no.CouponCode != nil {
		couponQuery := `
			UPDATE coupons SET times_used = times_used + 1
			WHERE code=$1 AND is_active = TRUE
				AND (max_uses IS NULL OR times_used < max_uses)
		`
		tag, err := tx.Exec(ctx, couponQuery, *no.CouponCode)
		if err != nil {
			return 0, fmt.Errorf("redeem coupon: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("coupon %s: %w", *no.CouponCode, ErrCouponExhausted)
		}
	}

	var orderID int64
	orderQuery := `
		INSERT INTO orders (displayid, userid, username, discordid, status,
			subtotal, discount_amount, total, coupon_code, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now())
		RETURNING orderid
	`
	if err := tx.QueryRow(ctx, orderQuery, no.DisplayID, no.UserID, no.Username, no.DiscordID,
		model.StatusPending, no.Subtotal, no.DiscountAmount, no.Total, no.CouponCode).Scan(&orderID); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (orderid, productid, name, image_url, quantity, unit_price)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	for _, it := range no.Items {
		if _, err := tx.Exec(ctx, itemQuery, orderID, it.ProductID, it.Name, it.ImageURL, it.Quantity, it.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	historyQuery := `INSERT INTO order_status_history (orderid, from_status, to_status, created_at)
		VALUES ($1, NULL, $2, now())`
	if _, err := tx.Exec(ctx, historyQuery, orderID, model.StatusPending); err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE userid=$1`, no.UserID); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE user_profiles SET applied_coupon_code=NULL WHERE userid=$1`, no.UserID); err != nil {
		return 0, fmt.Errorf("clear applied coupon: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return orderID, nil
}

// MoveStatus performs one status transition as a single guarded update
// plus a history row and exactly one notification, all in one
// transaction. A zero-row update means the order is no longer in the
// expected source state and nothing is written.
func (r *OrderRepository) MoveStatus(ctx context.Context, orderID int64, from, to string, adminID int64, delivery *string, message string) (*model.Notification, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	moveQuery := `
		UPDATE orders
		SET status=$1, last_modified_by=$2, delivery_details=COALESCE($3, delivery_details)
		WHERE orderid=$4 AND status=$5
		RETURNING userid
	`
	var userID int64
	err = tx.QueryRow(ctx, moveQuery, to, adminID, delivery, orderID, from).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d %s->%s: %w", orderID, from, to, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("move order: %w", err)
	}

	historyQuery := `INSERT INTO order_status_history (orderid, from_status, to_status, adminid, created_at)
		VALUES ($1,$2,$3,$4,now())`
	if _, err := tx.Exec(ctx, historyQuery, orderID, from, to, adminID); err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}

	var n model.Notification
	notifQuery := `
		INSERT INTO notifications (userid, orderid, message, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, now())
		RETURNING notificationid, created_at
	`
	if err := tx.QueryRow(ctx, notifQuery, userID, orderID, message).Scan(&n.NotificationID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	n.UserID = userID
	n.OrderID = orderID
	n.Message = message

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &n, nil
}

const orderColumns = `orderid, displayid, userid, username, discordid, status,
	subtotal, discount_amount, total, coupon_code, delivery_details, last_modified_by, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.OrderID, &o.DisplayID, &o.UserID, &o.Username, &o.DiscordID, &o.Status,
		&o.Subtotal, &o.DiscountAmount, &o.Total, &o.CouponCode, &o.DeliveryDetails,
		&o.LastModifiedBy, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE orderid=$1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.itemsFor(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := r.DB.Query(ctx, `SELECT orderitemid, orderid, productid, name, image_url, quantity, unit_price
		FROM order_items WHERE orderid=$1 ORDER BY orderitemid`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Name, &it.ImageURL, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByStatus returns orders in a given state, newest first (admin view).
func (r *OrderRepository) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY orderid DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByUser returns all of a user's orders regardless of state.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE userid=$1 ORDER BY orderid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// History returns the append-only status log for an order, oldest first.
func (r *OrderRepository) History(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	rows, err := r.DB.Query(ctx, `SELECT changeid, orderid, from_status, to_status, adminid, created_at
		FROM order_status_history WHERE orderid=$1 ORDER BY changeid`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StatusChange
	for rows.Next() {
		var sc model.StatusChange
		if err := rows.Scan(&sc.ChangeID, &sc.OrderID, &sc.FromStatus, &sc.ToStatus, &sc.AdminID, &sc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
