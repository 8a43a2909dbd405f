package models

import "time"

// TrackedMessage is a bot-sent message that can be removed by reacting with
// the removal emoji. Rows expire so stale messages stop being tracked.
type TrackedMessage struct {
	ID        string    `db:"id"         json:"id"`
	GuildID   string    `db:"guild_id"   json:"guild_id"`
	ChannelID string    `db:"channel_id" json:"channel_id"`
	MessageID string    `db:"message_id" json:"message_id"`
	// RequesterUserID is the user whose command produced the message; they
	// may always remove it themselves
	RequesterUserID string    `db:"requester_user_id" json:"requester_user_id"`
	ExpiresAt       time.Time `db:"expires_at"        json:"expires_at"`
	CreatedAt       time.Time `db:"created_at"        json:"created_at"`
}
