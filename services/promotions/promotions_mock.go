package promotions

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockPromotionsService is a mock implementation of the PromotionsService interface
type MockPromotionsService struct {
	mock.Mock
}

func (m *MockPromotionsService) GetActiveCampaignByPollMessage(
	ctx context.Context,
	guildID, pollMessageID string,
) (mo.Option[*models.PromotionCampaign], error) {
	args := m.Called(ctx, guildID, pollMessageID)
	return args.Get(0).(mo.Option[*models.PromotionCampaign]), args.Error(1)
}

func (m *MockPromotionsService) RecordVote(
	ctx context.Context,
	campaignID, voterID string,
	sentiment models.PromotionVoteSentiment,
) (*models.PromotionTally, error) {
	args := m.Called(ctx, campaignID, voterID, sentiment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromotionTally), args.Error(1)
}
