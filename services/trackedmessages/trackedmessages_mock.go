package trackedmessages

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockTrackedMessagesService is a mock implementation of the TrackedMessagesService interface
type MockTrackedMessagesService struct {
	mock.Mock
}

func (m *MockTrackedMessagesService) TrackMessage(
	ctx context.Context,
	guildID, channelID, messageID, requesterUserID string,
	ttl time.Duration,
) (*models.TrackedMessage, error) {
	args := m.Called(ctx, guildID, channelID, messageID, requesterUserID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackedMessage), args.Error(1)
}

func (m *MockTrackedMessagesService) GetTrackedMessage(
	ctx context.Context,
	guildID, messageID string,
) (mo.Option[*models.TrackedMessage], error) {
	args := m.Called(ctx, guildID, messageID)
	return args.Get(0).(mo.Option[*models.TrackedMessage]), args.Error(1)
}

func (m *MockTrackedMessagesService) UntrackMessage(ctx context.Context, guildID, messageID string) error {
	args := m.Called(ctx, guildID, messageID)
	return args.Error(0)
}

func (m *MockTrackedMessagesService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
