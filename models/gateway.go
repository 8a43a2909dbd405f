package models

import "time"

// Message is the adapted payload of a guild message. It carries only what
// feature handlers need, never the raw gateway framing.
type Message struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
	// IsBot is true when the message was authored by a bot account
	IsBot bool
	// Mentions contains the user IDs of all users mentioned in this message
	Mentions []string
	// EmojiNames contains the custom emoji names used in the message content
	EmojiNames []string
	Timestamp  time.Time
}

// Reaction describes a single reaction added to or removed from a message.
type Reaction struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	EmojiName string
}

// Member describes a guild member at the time of a join/leave event.
type Member struct {
	GuildID  string
	UserID   string
	Username string
	// RoleIDs holds the member's role IDs at event time (empty on leave)
	RoleIDs []string
}

// Channel describes a guild channel at the time of a create/update event.
type Channel struct {
	GuildID   string
	ChannelID string
	Name      string
	Topic     string
	IsThread  bool
}

type AuditLogAction string

const (
	AuditLogActionBan       AuditLogAction = "ban"
	AuditLogActionUnban     AuditLogAction = "unban"
	AuditLogActionKick      AuditLogAction = "kick"
	AuditLogActionMemberMod AuditLogAction = "member_update"
	AuditLogActionOther     AuditLogAction = "other"
)

// AuditLogEntry describes an entry created in the guild audit log.
type AuditLogEntry struct {
	GuildID  string
	EntryID  string
	ActorID  string
	TargetID string
	Action   AuditLogAction
	Reason   string
}
