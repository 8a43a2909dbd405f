package guildchannels

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockGuildChannelsService is a mock implementation of the GuildChannelsService interface
type MockGuildChannelsService struct {
	mock.Mock
}

func (m *MockGuildChannelsService) UpsertChannel(
	ctx context.Context,
	channel models.Channel,
) (*models.GuildChannel, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildChannel), args.Error(1)
}
