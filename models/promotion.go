package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionCampaignStatus string

const (
	PromotionCampaignStatusActive   PromotionCampaignStatus = "active"
	PromotionCampaignStatusAccepted PromotionCampaignStatus = "accepted"
	PromotionCampaignStatusRejected PromotionCampaignStatus = "rejected"
)

// PromotionCampaign is a community vote on promoting a member to a new role.
// Votes are cast by reacting to the campaign's poll message.
type PromotionCampaign struct {
	ID            string                  `db:"id"              json:"id"`
	GuildID       string                  `db:"guild_id"        json:"guild_id"`
	SubjectUserID string                  `db:"subject_user_id" json:"subject_user_id"`
	TargetRoleID  string                  `db:"target_role_id"  json:"target_role_id"`
	PollChannelID string                  `db:"poll_channel_id" json:"poll_channel_id"`
	PollMessageID string                  `db:"poll_message_id" json:"poll_message_id"`
	Status        PromotionCampaignStatus `db:"status"          json:"status"`
	CreatedAt     time.Time               `db:"created_at"      json:"created_at"`
	UpdatedAt     time.Time               `db:"updated_at"      json:"updated_at"`
}

type PromotionVoteSentiment string

const (
	PromotionVoteApprove PromotionVoteSentiment = "approve"
	PromotionVoteOppose  PromotionVoteSentiment = "oppose"
)

type PromotionVote struct {
	ID         string                 `db:"id"          json:"id"`
	CampaignID string                 `db:"campaign_id" json:"campaign_id"`
	VoterID    string                 `db:"voter_id"    json:"voter_id"`
	Sentiment  PromotionVoteSentiment `db:"sentiment"   json:"sentiment"`
	CreatedAt  time.Time              `db:"created_at"  json:"created_at"`
}

// PromotionTally is the current vote standing for one campaign.
type PromotionTally struct {
	ApproveCount int64
	OpposeCount  int64
}

// ApprovalRatio returns approvals as a fraction of all votes, zero when no
// votes have been cast.
func (t PromotionTally) ApprovalRatio() decimal.Decimal {
	total := t.ApproveCount + t.OpposeCount
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(t.ApproveCount).Div(decimal.NewFromInt(total))
}
