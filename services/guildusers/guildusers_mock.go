package guildusers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockGuildUsersService is a mock implementation of the GuildUsersService interface
type MockGuildUsersService struct {
	mock.Mock
}

func (m *MockGuildUsersService) RecordJoin(
	ctx context.Context,
	guildID, userID, username string,
) (*models.GuildUser, error) {
	args := m.Called(ctx, guildID, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildUser), args.Error(1)
}

func (m *MockGuildUsersService) RecordLeave(ctx context.Context, guildID, userID string) error {
	args := m.Called(ctx, guildID, userID)
	return args.Error(0)
}
