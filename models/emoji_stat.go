package models

import "time"

type EmojiUsageKind string

const (
	EmojiUsageKindMessage  EmojiUsageKind = "message"
	EmojiUsageKindReaction EmojiUsageKind = "reaction"
)

type EmojiStat struct {
	ID        string         `db:"id"         json:"id"`
	GuildID   string         `db:"guild_id"   json:"guild_id"`
	EmojiName string         `db:"emoji_name" json:"emoji_name"`
	Kind      EmojiUsageKind `db:"kind"       json:"kind"`
	UsesCount int64          `db:"uses_count" json:"uses_count"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
