package repository

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `productid, name, price, original_price, discount_pct, platforms, tags,
	image_url, banner_url, description, category, is_active, stock_type, stock_qty, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ProductID, &p.Name, &p.Price, &p.OriginalPrice, &p.DiscountPct,
		&p.Platforms, &p.Tags, &p.ImageURL, &p.BannerURL, &p.Description,
		&p.Category, &p.IsActive, &p.StockType, &p.StockQty, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, f model.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any
	if f.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if f.Platform != "" {
		args = append(args, f.Platform)
		query += fmt.Sprintf(` AND $%d = ANY(platforms)`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	query += ` ORDER BY productid DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE productid=$1`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	query := `
		INSERT INTO products (name, price, original_price, discount_pct, platforms, tags,
			image_url, banner_url, description, category, is_active, stock_type, stock_qty)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING productid
	`
	var id int64
	err := r.DB.QueryRow(ctx, query, p.Name, p.Price, p.OriginalPrice, p.DiscountPct,
		p.Platforms, p.Tags, p.ImageURL, p.BannerURL, p.Description,
		p.Category, p.IsActive, p.StockType, p.StockQty).Scan(&id)
	return id, err
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products SET name=$1, price=$2, original_price=$3, discount_pct=$4,
			platforms=$5, tags=$6, image_url=$7, banner_url=$8, description=$9,
			category=$10, is_active=$11, stock_type=$12, stock_qty=$13
		WHERE productid=$14
	`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Price, p.OriginalPrice, p.DiscountPct,
		p.Platforms, p.Tags, p.ImageURL, p.BannerURL, p.Description,
		p.Category, p.IsActive, p.StockType, p.StockQty, p.ProductID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE productid=$1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
