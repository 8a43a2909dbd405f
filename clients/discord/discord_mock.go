package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modbot/clients"
)

// MockDiscordClient is a mock implementation of the clients.DiscordClient interface
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser(ctx context.Context) (*clients.BotUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.BotUser), args.Error(1)
}

func (m *MockDiscordClient) GetGuildMember(
	ctx context.Context,
	guildID, userID string,
) (*clients.GuildMember, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.GuildMember), args.Error(1)
}

func (m *MockDiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}
