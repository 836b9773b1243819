package model

import "time"

type UserProfile struct {
	UserID    int64   `json:"userid"`
	DiscordID string  `json:"discordid"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarurl,omitempty"`
	// provider token, kept for the membership recheck at checkout
	AccessToken       string     `json:"-"`
	AppliedCouponCode *string    `json:"appliedcouponcode,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}
