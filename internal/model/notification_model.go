package model

import "time"

type Notification struct {
	NotificationID int64     `json:"notificationid"`
	UserID         int64     `json:"userid"`
	OrderID        int64     `json:"orderid"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
