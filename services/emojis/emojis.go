package emojis

import (
	"context"
	"fmt"

	"modbot/db"
	"modbot/models"
)

type EmojisService struct {
	emojiStatsRepo *db.PostgresEmojiStatsRepository
}

func NewEmojisService(repo *db.PostgresEmojiStatsRepository) *EmojisService {
	return &EmojisService{emojiStatsRepo: repo}
}

func (s *EmojisService) RecordEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	if guildID == "" || emojiName == "" {
		return fmt.Errorf("guild_id and emoji_name cannot be empty")
	}

	if err := s.emojiStatsRepo.IncrementEmojiUse(ctx, guildID, emojiName, kind); err != nil {
		return fmt.Errorf("failed to record emoji use: %w", err)
	}

	return nil
}

func (s *EmojisService) RemoveEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	if guildID == "" || emojiName == "" {
		return fmt.Errorf("guild_id and emoji_name cannot be empty")
	}

	if err := s.emojiStatsRepo.DecrementEmojiUse(ctx, guildID, emojiName, kind); err != nil {
		return fmt.Errorf("failed to remove emoji use: %w", err)
	}

	return nil
}

func (s *EmojisService) GetTopEmojis(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.EmojiStat, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild_id cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	stats, err := s.emojiStatsRepo.GetTopEmojis(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top emojis: %w", err)
	}

	return stats, nil
}
