package emojis

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockEmojisService is a mock implementation of the EmojisService interface
type MockEmojisService struct {
	mock.Mock
}

func (m *MockEmojisService) RecordEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	args := m.Called(ctx, guildID, emojiName, kind)
	return args.Error(0)
}

func (m *MockEmojisService) RemoveEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	args := m.Called(ctx, guildID, emojiName, kind)
	return args.Error(0)
}

func (m *MockEmojisService) GetTopEmojis(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.EmojiStat, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EmojiStat), args.Error(1)
}
