package models

import "time"

// GuildUser tracks a user's membership in a guild across join/leave events.
type GuildUser struct {
	ID           string     `db:"id"             json:"id"`
	GuildID      string     `db:"guild_id"       json:"guild_id"`
	UserID       string     `db:"user_id"        json:"user_id"`
	Username     string     `db:"username"       json:"username"`
	FirstSeenAt  time.Time  `db:"first_seen_at"  json:"first_seen_at"`
	LastJoinedAt time.Time  `db:"last_joined_at" json:"last_joined_at"`
	LeftAt       *time.Time `db:"left_at"        json:"left_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"     json:"updated_at"`
}
