package model

import "time"

const (
	StockInfinite = "INFINITE"
	StockLimited  = "LIMITED"
)

type Product struct {
	ProductID     int64      `json:"productid"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	OriginalPrice *float64   `json:"originalprice,omitempty"`
	DiscountPct   *float64   `json:"discountpct,omitempty"`
	Platforms     []string   `json:"platforms"`
	Tags          []string   `json:"tags"`
	ImageURL      *string    `json:"imageurl,omitempty"`
	BannerURL     *string    `json:"bannerurl,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Category      string     `json:"category"`
	IsActive      bool       `json:"is_active"`
	StockType     string     `json:"stocktype"`
	StockQty      *int       `json:"stockqty,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// InStock reports whether the product can currently be ordered.
// Only LIMITED products with zero quantity count as out of stock.
func (p *Product) InStock() bool {
	if p.StockType != StockLimited {
		return true
	}
	return p.StockQty != nil && *p.StockQty > 0
}

// ProductView is what the catalog endpoints return: the stored row plus
// derived stock status and a display-currency price. Prices are stored in
// USD; DisplayPrice is the only place a conversion rate is ever applied.
type ProductView struct {
	Product
	StockStatus  string  `json:"stockstatus"`
	DisplayPrice float64 `json:"displayprice"`
}

type ProductFilter struct {
	Category   string
	Platform   string
	Search     string
	ActiveOnly bool
}
