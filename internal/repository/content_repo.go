package repository

import (
	"context"
	"errors"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentRepository covers the admin-editable storefront content:
// app settings, homepage carousel, top products and product reviews.
type ContentRepository struct {
	DB *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := r.DB.QueryRow(ctx, `SELECT value FROM app_settings WHERE key=$1`, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *ContentRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO app_settings (key, value) VALUES ($1,$2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`, key, value)
	return err
}

func (r *ContentRepository) ListCarousel(ctx context.Context) ([]model.CarouselSlide, error) {
	rows, err := r.DB.Query(ctx, `SELECT slideid, title, image_url, link_url, position
		FROM homepage_carousel ORDER BY position, slideid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CarouselSlide
	for rows.Next() {
		var s model.CarouselSlide
		if err := rows.Scan(&s.SlideID, &s.Title, &s.ImageURL, &s.LinkURL, &s.Position); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ContentRepository) UpsertSlide(ctx context.Context, s *model.CarouselSlide) (int64, error) {
	if s.SlideID == 0 {
		var id int64
		err := r.DB.QueryRow(ctx, `INSERT INTO homepage_carousel (title, image_url, link_url, position)
			VALUES ($1,$2,$3,$4) RETURNING slideid`, s.Title, s.ImageURL, s.LinkURL, s.Position).Scan(&id)
		return id, err
	}
	tag, err := r.DB.Exec(ctx, `UPDATE homepage_carousel SET title=$1, image_url=$2, link_url=$3, position=$4
		WHERE slideid=$5`, s.Title, s.ImageURL, s.LinkURL, s.Position, s.SlideID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return s.SlideID, nil
}

func (r *ContentRepository) DeleteSlide(ctx context.Context, slideID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM homepage_carousel WHERE slideid=$1`, slideID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTopProducts returns the curated homepage products in display order.
func (r *ContentRepository) ListTopProducts(ctx context.Context) ([]model.TopProduct, error) {
	rows, err := r.DB.Query(ctx, `SELECT productid, position FROM homepage_top_products ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TopProduct
	for rows.Next() {
		var tp model.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Position); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// SetTopProducts replaces the curated list atomically.
func (r *ContentRepository) SetTopProducts(ctx context.Context, products []model.TopProduct) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM homepage_top_products`); err != nil {
		return err
	}
	for _, tp := range products {
		if _, err := tx.Exec(ctx, `INSERT INTO homepage_top_products (productid, position) VALUES ($1,$2)`,
			tp.ProductID, tp.Position); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ContentRepository) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	query := `
		SELECT rv.reviewid, rv.productid, rv.userid, up.username, rv.rating, rv.body, rv.created_at
		FROM reviews rv
		JOIN user_profiles up ON up.userid = rv.userid
		WHERE rv.productid=$1
		ORDER BY rv.reviewid DESC
	`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ReviewID, &rv.ProductID, &rv.UserID, &rv.Username, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		replies, err := r.listReplies(ctx, out[i].ReviewID)
		if err != nil {
			return nil, err
		}
		out[i].Replies = replies
	}
	return out, nil
}

func (r *ContentRepository) listReplies(ctx context.Context, reviewID int64) ([]model.ReviewReply, error) {
	rows, err := r.DB.Query(ctx, `SELECT replyid, reviewid, adminid, body, created_at
		FROM review_replies WHERE reviewid=$1 ORDER BY replyid`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReviewReply
	for rows.Next() {
		var rr model.ReviewReply
		if err := rows.Scan(&rr.ReplyID, &rr.ReviewID, &rr.AdminID, &rr.Body, &rr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *ContentRepository) AddReview(ctx context.Context, rv *model.Review) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `INSERT INTO reviews (productid, userid, rating, body, created_at)
		VALUES ($1,$2,$3,$4,now()) RETURNING reviewid`,
		rv.ProductID, rv.UserID, rv.Rating, rv.Body).Scan(&id)
	return id, err
}

func (r *ContentRepository) AddReply(ctx context.Context, reviewID, adminID int64, body string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `INSERT INTO review_replies (reviewid, adminid, body, created_at)
		VALUES ($1,$2,$3,now()) RETURNING replyid`, reviewID, adminID, body).Scan(&id)
	return id, err
}
