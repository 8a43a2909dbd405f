package models

import "time"

type InfractionType string

const (
	InfractionTypeNotice  InfractionType = "notice"
	InfractionTypeWarning InfractionType = "warning"
	InfractionTypeKick    InfractionType = "kick"
	InfractionTypeBan     InfractionType = "ban"
)

type Infraction struct {
	ID      string         `db:"id"       json:"id"`
	GuildID string         `db:"guild_id" json:"guild_id"`
	// SubjectUserID is the user the infraction was issued against
	SubjectUserID string `db:"subject_user_id" json:"subject_user_id"`
	// IssuerUserID is the moderator (or the bot) that issued it
	IssuerUserID string         `db:"issuer_user_id" json:"issuer_user_id"`
	Type         InfractionType `db:"type"           json:"type"`
	Reason       string         `db:"reason"         json:"reason"`
	// AuditLogEntryID links infractions synced from the guild audit log
	AuditLogEntryID *string   `db:"audit_log_entry_id" json:"audit_log_entry_id,omitempty"`
	CreatedAt       time.Time `db:"created_at"         json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"         json:"updated_at"`
}
