package models

import "time"

// Claim is a single authorization grant derived from a guild role.
type Claim string

const (
	ClaimModerationWarn          Claim = "moderation.warn"
	ClaimModerationBan           Claim = "moderation.ban"
	ClaimModerationDeleteMessage Claim = "moderation.deletemessage"
	ClaimModerationRemoveMessage Claim = "moderation.removemessage"
	ClaimModerationBypass        Claim = "moderation.bypass"
	ClaimTagsManage              Claim = "tags.manage"
	ClaimPromotionsManage        Claim = "promotions.manage"
)

var knownClaims = map[Claim]bool{
	ClaimModerationWarn:          true,
	ClaimModerationBan:           true,
	ClaimModerationDeleteMessage: true,
	ClaimModerationRemoveMessage: true,
	ClaimModerationBypass:        true,
	ClaimTagsManage:              true,
	ClaimPromotionsManage:        true,
}

// IsValid reports whether the claim is one of the recognized grants.
func (c Claim) IsValid() bool {
	return knownClaims[c]
}

// ClaimMapping assigns one claim to one guild role.
type ClaimMapping struct {
	ID        string    `db:"id"         json:"id"`
	GuildID   string    `db:"guild_id"   json:"guild_id"`
	RoleID    string    `db:"role_id"    json:"role_id"`
	Claim     Claim     `db:"claim"      json:"claim"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
