package emojis

import (
	"context"
	"fmt"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// EmojiStatsHandler maintains per-guild emoji usage counters from message
// content and reactions. Reaction removals decrement so the counters track
// current sentiment, not historical peaks.
type EmojiStatsHandler struct {
	emojisService services.EmojisService
}

func NewEmojiStatsHandler(emojisService services.EmojisService) *EmojiStatsHandler {
	return &EmojiStatsHandler{emojisService: emojisService}
}

func (h *EmojiStatsHandler) Name() string {
	return "emojis.stats"
}

func (h *EmojiStatsHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	switch n := notification.(type) {
	case models.MessageReceivedNotification:
		return h.recordMessageEmojis(ctx, n.Message)
	case models.ReactionAddedNotification:
		if err := h.emojisService.RecordEmojiUse(
			ctx, n.Reaction.GuildID, n.Reaction.EmojiName, models.EmojiUsageKindReaction); err != nil {
			return fmt.Errorf("failed to record reaction emoji use: %w", err)
		}
		return nil
	case models.ReactionRemovedNotification:
		if err := h.emojisService.RemoveEmojiUse(
			ctx, n.Reaction.GuildID, n.Reaction.EmojiName, models.EmojiUsageKindReaction); err != nil {
			return fmt.Errorf("failed to remove reaction emoji use: %w", err)
		}
		return nil
	default:
		return nil
	}
}

func (h *EmojiStatsHandler) recordMessageEmojis(ctx context.Context, message models.Message) error {
	if message.IsBot {
		return nil
	}

	for _, emojiName := range message.EmojiNames {
		if err := h.emojisService.RecordEmojiUse(
			ctx, message.GuildID, emojiName, models.EmojiUsageKindMessage); err != nil {
			return fmt.Errorf("failed to record message emoji use: %w", err)
		}
	}
	return nil
}
