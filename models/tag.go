package models

import "time"

type Tag struct {
	ID            string    `db:"id"              json:"id"`
	GuildID       string    `db:"guild_id"        json:"guild_id"`
	Name          string    `db:"name"            json:"name"`
	Content       string    `db:"content"         json:"content"`
	OwnerUserID   string    `db:"owner_user_id"   json:"owner_user_id"`
	UsesCount     int64     `db:"uses_count"      json:"uses_count"`
	LastUsedAt    *time.Time `db:"last_used_at"   json:"last_used_at,omitempty"`
	CreatedAt     time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"      json:"updated_at"`
}

// TagUsageStat is an aggregated per-guild usage row for the stats endpoint.
type TagUsageStat struct {
	Name      string `db:"name"       json:"name"`
	UsesCount int64  `db:"uses_count" json:"uses_count"`
}
