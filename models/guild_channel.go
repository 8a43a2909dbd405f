package models

import "time"

// GuildChannel is a tracked guild channel kept in sync from channel events.
type GuildChannel struct {
	ID        string    `db:"id"         json:"id"`
	GuildID   string    `db:"guild_id"   json:"guild_id"`
	ChannelID string    `db:"channel_id" json:"channel_id"`
	Name      string    `db:"name"       json:"name"`
	Topic     string    `db:"topic"      json:"topic"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
