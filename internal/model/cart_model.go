package model

// CartItem is what the API exposes (joined with products for name/price)
type CartItem struct {
	ProductID int64   `json:"productid"`
	Name      string  `json:"name"`
	ImageURL  *string `json:"imageurl,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitprice"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse is returned by every cart read and after every cart
// mutation, so the caller always holds the authoritative server state.
type CartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}
