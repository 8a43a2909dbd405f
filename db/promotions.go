package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresPromotionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for promotion_campaigns table
var promotionCampaignsColumns = []string{
	"id",
	"guild_id",
	"subject_user_id",
	"target_role_id",
	"poll_channel_id",
	"poll_message_id",
	"status",
	"created_at",
	"updated_at",
}

func NewPostgresPromotionsRepository(db *sqlx.DB, schema string) *PostgresPromotionsRepository {
	return &PostgresPromotionsRepository{db: db, schema: schema}
}

func (r *PostgresPromotionsRepository) CreateCampaign(
	ctx context.Context,
	campaign *models.PromotionCampaign,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	if campaign.ID == "" {
		campaign.ID = core.NewID("pc")
	}
	if campaign.Status == "" {
		campaign.Status = models.PromotionCampaignStatusActive
	}

	columnsStr := strings.Join(promotionCampaignsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.promotion_campaigns (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	if err := db.QueryRowxContext(ctx, query,
		campaign.ID,
		campaign.GuildID,
		campaign.SubjectUserID,
		campaign.TargetRoleID,
		campaign.PollChannelID,
		campaign.PollMessageID,
		campaign.Status,
	).StructScan(campaign); err != nil {
		return fmt.Errorf("failed to create promotion campaign: %w", err)
	}

	return nil
}

func (r *PostgresPromotionsRepository) GetActiveCampaignByPollMessage(
	ctx context.Context,
	guildID, pollMessageID string,
) (mo.Option[*models.PromotionCampaign], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(promotionCampaignsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.promotion_campaigns
		WHERE guild_id = $1 AND poll_message_id = $2 AND status = $3`, returningStr, r.schema)

	campaign := &models.PromotionCampaign{}
	err := db.QueryRowxContext(ctx, query, guildID, pollMessageID,
		models.PromotionCampaignStatusActive).StructScan(campaign)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.PromotionCampaign](), nil
		}
		return mo.None[*models.PromotionCampaign](), fmt.Errorf(
			"failed to get active campaign by poll message: %w", err)
	}

	return mo.Some(campaign), nil
}

// UpsertVote records a vote, replacing the voter's previous sentiment when
// they switch reactions.
func (r *PostgresPromotionsRepository) UpsertVote(
	ctx context.Context,
	vote *models.PromotionVote,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	if vote.ID == "" {
		vote.ID = core.NewID("pv")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.promotion_votes (id, campaign_id, voter_id, sentiment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (campaign_id, voter_id)
		DO UPDATE SET sentiment = EXCLUDED.sentiment`, r.schema)

	if _, err := db.ExecContext(ctx, query,
		vote.ID, vote.CampaignID, vote.VoterID, vote.Sentiment); err != nil {
		return fmt.Errorf("failed to upsert promotion vote: %w", err)
	}

	return nil
}

func (r *PostgresPromotionsRepository) GetTally(
	ctx context.Context,
	campaignID string,
) (*models.PromotionTally, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE sentiment = $2) AS approve_count,
			COUNT(*) FILTER (WHERE sentiment = $3) AS oppose_count
		FROM %s.promotion_votes
		WHERE campaign_id = $1`, r.schema)

	tally := &models.PromotionTally{}
	row := db.QueryRowxContext(ctx, query, campaignID,
		models.PromotionVoteApprove, models.PromotionVoteOppose)
	if err := row.Scan(&tally.ApproveCount, &tally.OpposeCount); err != nil {
		return nil, fmt.Errorf("failed to get promotion tally: %w", err)
	}

	return tally, nil
}
