package model

import "time"

// Admin roles are a totally ordered rank; all permission checks compare
// ranks, nothing is keyed off the role name.
type Admin struct {
	AdminID   int64      `json:"adminid"`
	DiscordID string     `json:"discordid"`
	Role      string     `json:"role"`
	Rank      int        `json:"rank"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
