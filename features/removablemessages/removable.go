package removablemessages

import (
	"context"
	"fmt"
	"log"

	"modbot/clients"
	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

const removalEmoji = "❌"

// RemovableMessageHandler deletes bot-posted messages when an authorized user
// reacts with the removal emoji. A reactor is authorized when they requested
// the message or hold the remove-message claim; anyone else is ignored. When
// the tracked message is deleted by other means its tracking record is
// cleaned up.
type RemovableMessageHandler struct {
	trackedMessagesService services.TrackedMessagesService
	discordClient          clients.DiscordClient
}

func NewRemovableMessageHandler(
	trackedMessagesService services.TrackedMessagesService,
	discordClient clients.DiscordClient,
) *RemovableMessageHandler {
	return &RemovableMessageHandler{
		trackedMessagesService: trackedMessagesService,
		discordClient:          discordClient,
	}
}

func (h *RemovableMessageHandler) Name() string {
	return "removablemessages.removal"
}

func (h *RemovableMessageHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	switch n := notification.(type) {
	case models.ReactionAddedNotification:
		return h.handleReaction(ctx, scope, n.Reaction)
	case models.MessageDeletedNotification:
		return h.handleMessageDeleted(ctx, n)
	default:
		return nil
	}
}

func (h *RemovableMessageHandler) handleReaction(
	ctx context.Context,
	scope *dispatch.Scope,
	reaction models.Reaction,
) error {
	if reaction.EmojiName != removalEmoji {
		return nil
	}

	maybeTracked, err := h.trackedMessagesService.GetTrackedMessage(ctx, reaction.GuildID, reaction.MessageID)
	if err != nil {
		return fmt.Errorf("failed to look up tracked message: %w", err)
	}
	tracked, present := maybeTracked.Get()
	if !present {
		return nil
	}

	// Authorization fails closed: whoever is neither the requester nor a
	// claim holder is ignored.
	authorized := reaction.UserID == tracked.RequesterUserID ||
		scope.Auth().HasClaim(models.ClaimModerationRemoveMessage)
	if !authorized {
		log.Printf("⏭️ Ignoring removal reaction by unauthorized user %s on message %s",
			reaction.UserID, reaction.MessageID)
		return nil
	}

	if err := h.discordClient.DeleteMessage(ctx, tracked.ChannelID, tracked.MessageID); err != nil {
		return fmt.Errorf("failed to delete tracked message %s: %w", tracked.MessageID, err)
	}
	if err := h.trackedMessagesService.UntrackMessage(ctx, tracked.GuildID, tracked.MessageID); err != nil {
		return fmt.Errorf("failed to untrack message %s: %w", tracked.MessageID, err)
	}

	log.Printf("🗑️ Removed tracked message %s on request of %s", tracked.MessageID, reaction.UserID)
	return nil
}

func (h *RemovableMessageHandler) handleMessageDeleted(
	ctx context.Context,
	notification models.MessageDeletedNotification,
) error {
	// Best effort cleanup - untracking an unknown message is a no-op
	if err := h.trackedMessagesService.UntrackMessage(
		ctx, notification.GuildIDValue, notification.MessageID); err != nil {
		return fmt.Errorf("failed to untrack deleted message %s: %w", notification.MessageID, err)
	}
	return nil
}
