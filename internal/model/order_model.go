package model

import "time"

// Order status values. Status lives in a single column on the orders
// table; a transition is one guarded row update, so an order is in
// exactly one state at any instant.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Order struct {
	OrderID   int64  `json:"orderid"`
	DisplayID string `json:"displayid"`
	UserID    int64  `json:"userid"`
	// denormalized for admin screens, no join needed
	Username        string      `json:"username"`
	DiscordID       string      `json:"discordid"`
	Status          string      `json:"status"`
	Subtotal        float64     `json:"subtotal"`
	DiscountAmount  float64     `json:"discountamount"`
	Total           float64     `json:"total"`
	CouponCode      *string     `json:"couponcode,omitempty"`
	DeliveryDetails *string     `json:"deliverydetails,omitempty"`
	LastModifiedBy  *int64      `json:"lastmodifiedby,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem is a frozen snapshot of the product at purchase time. Later
// catalog edits never touch historical orders.
type OrderItem struct {
	OrderItemID int64   `json:"orderitemid"`
	OrderID     int64   `json:"orderid"`
	ProductID   int64   `json:"productid"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"imageurl,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitprice"`
}

// StatusChange is one row of the append-only order_status_history log.
type StatusChange struct {
	ChangeID   int64     `json:"changeid"`
	OrderID    int64     `json:"orderid"`
	FromStatus *string   `json:"fromstatus,omitempty"`
	ToStatus   string    `json:"tostatus"`
	AdminID    *int64    `json:"adminid,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
