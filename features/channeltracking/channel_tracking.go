package channeltracking

import (
	"context"
	"fmt"
	"log"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// ChannelTrackingHandler mirrors guild channel metadata into storage so other
// features can resolve channel names without a gateway round trip. Threads
// are not tracked.
type ChannelTrackingHandler struct {
	guildChannelsService services.GuildChannelsService
}

func NewChannelTrackingHandler(guildChannelsService services.GuildChannelsService) *ChannelTrackingHandler {
	return &ChannelTrackingHandler{guildChannelsService: guildChannelsService}
}

func (h *ChannelTrackingHandler) Name() string {
	return "channeltracking.mirror"
}

func (h *ChannelTrackingHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	var channel models.Channel
	switch n := notification.(type) {
	case models.ChannelCreatedNotification:
		channel = n.Channel
	case models.ChannelUpdatedNotification:
		channel = n.Channel
	default:
		return nil
	}

	if channel.IsThread {
		log.Printf("⏭️ Skipping thread channel %s", channel.ChannelID)
		return nil
	}

	if _, err := h.guildChannelsService.UpsertChannel(ctx, channel); err != nil {
		return fmt.Errorf("failed to upsert channel %s: %w", channel.ChannelID, err)
	}
	return nil
}
