package promotions

import (
	"context"
	"fmt"
	"log"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

const (
	approveEmoji = "👍"
	opposeEmoji  = "👎"
)

// PromotionVoteHandler turns reactions on a campaign's poll message into
// votes. Switching reactions switches the vote; nominees cannot vote on
// their own campaign.
type PromotionVoteHandler struct {
	promotionsService services.PromotionsService
}

func NewPromotionVoteHandler(promotionsService services.PromotionsService) *PromotionVoteHandler {
	return &PromotionVoteHandler{promotionsService: promotionsService}
}

func (h *PromotionVoteHandler) Name() string {
	return "promotions.votes"
}

func (h *PromotionVoteHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	reactionNotification, ok := notification.(models.ReactionAddedNotification)
	if !ok {
		return nil
	}
	reaction := reactionNotification.Reaction

	var sentiment models.PromotionVoteSentiment
	switch reaction.EmojiName {
	case approveEmoji:
		sentiment = models.PromotionVoteApprove
	case opposeEmoji:
		sentiment = models.PromotionVoteOppose
	default:
		return nil
	}

	maybeCampaign, err := h.promotionsService.GetActiveCampaignByPollMessage(
		ctx, reaction.GuildID, reaction.MessageID)
	if err != nil {
		return fmt.Errorf("failed to look up campaign for poll message: %w", err)
	}
	campaign, present := maybeCampaign.Get()
	if !present {
		// Reaction on a message that is not an active poll
		return nil
	}

	if campaign.SubjectUserID == reaction.UserID {
		log.Printf("⏭️ Ignoring self-vote by nominee %s on campaign %s", reaction.UserID, campaign.ID)
		return nil
	}

	tally, err := h.promotionsService.RecordVote(ctx, campaign.ID, reaction.UserID, sentiment)
	if err != nil {
		return fmt.Errorf("failed to record vote on campaign %s: %w", campaign.ID, err)
	}

	log.Printf("🗳️ Recorded %s vote by %s on campaign %s (tally: %d approve / %d oppose)",
		sentiment, reaction.UserID, campaign.ID, tally.ApproveCount, tally.OpposeCount)
	return nil
}
