package promotions

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"modbot/db"
	"modbot/models"
)

type PromotionsService struct {
	promotionsRepo *db.PostgresPromotionsRepository
}

func NewPromotionsService(repo *db.PostgresPromotionsRepository) *PromotionsService {
	return &PromotionsService{promotionsRepo: repo}
}

func (s *PromotionsService) GetActiveCampaignByPollMessage(
	ctx context.Context,
	guildID, pollMessageID string,
) (mo.Option[*models.PromotionCampaign], error) {
	if guildID == "" || pollMessageID == "" {
		return mo.None[*models.PromotionCampaign](), fmt.Errorf(
			"guild_id and poll_message_id cannot be empty")
	}

	maybeCampaign, err := s.promotionsRepo.GetActiveCampaignByPollMessage(ctx, guildID, pollMessageID)
	if err != nil {
		return mo.None[*models.PromotionCampaign](), fmt.Errorf(
			"failed to get active campaign by poll message: %w", err)
	}

	return maybeCampaign, nil
}

// RecordVote stores the voter's sentiment and returns the updated tally.
// A voter switching reactions overwrites their previous vote.
func (s *PromotionsService) RecordVote(
	ctx context.Context,
	campaignID, voterID string,
	sentiment models.PromotionVoteSentiment,
) (*models.PromotionTally, error) {
	log.Printf("📋 Starting to record %s vote by %s on campaign %s", sentiment, voterID, campaignID)

	if campaignID == "" || voterID == "" {
		return nil, fmt.Errorf("campaign_id and voter_id cannot be empty")
	}

	vote := &models.PromotionVote{
		CampaignID: campaignID,
		VoterID:    voterID,
		Sentiment:  sentiment,
	}
	if err := s.promotionsRepo.UpsertVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	tally, err := s.promotionsRepo.GetTally(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tally after vote: %w", err)
	}

	ratio := tally.ApprovalRatio().Mul(decimal.NewFromInt(100)).Round(1)
	log.Printf("📋 Completed successfully - campaign %s now at %s%% approval (%d/%d)",
		campaignID, ratio.String(), tally.ApproveCount, tally.ApproveCount+tally.OpposeCount)
	return tally, nil
}
