package moderation

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"modbot/clients"
	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// inviteLinkRegex matches Discord invite links, the single most common spam
// vector in public guilds.
var inviteLinkRegex = regexp.MustCompile(`(?i)(discord\.gg|discord(app)?\.com/invite)/[A-Za-z0-9-]+`)

// MessageFilterHandler scans received and edited messages for invite links
// and banned terms. Violations delete the message and record a warning
// infraction against the author.
type MessageFilterHandler struct {
	infractionsService services.InfractionsService
	discordClient      clients.DiscordClient
	bannedTerms        []string
}

func NewMessageFilterHandler(
	infractionsService services.InfractionsService,
	discordClient clients.DiscordClient,
	bannedTerms []string,
) *MessageFilterHandler {
	return &MessageFilterHandler{
		infractionsService: infractionsService,
		discordClient:      discordClient,
		bannedTerms:        bannedTerms,
	}
}

func (h *MessageFilterHandler) Name() string {
	return "moderation.message_filter"
}

func (h *MessageFilterHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	switch n := notification.(type) {
	case models.MessageReceivedNotification:
		return h.filterMessage(ctx, scope, n.Message)
	case models.MessageUpdatedNotification:
		// Edits can sneak a violation into an already-clean message
		return h.filterMessage(ctx, scope, n.New)
	default:
		return nil
	}
}

func (h *MessageFilterHandler) filterMessage(
	ctx context.Context,
	scope *dispatch.Scope,
	message models.Message,
) error {
	if message.IsBot {
		return nil
	}
	if scope.Auth().HasClaim(models.ClaimModerationBypass) {
		log.Printf("⏭️ Author %s holds moderation bypass - skipping filter", message.AuthorID)
		return nil
	}

	violation, ok := h.findViolation(message.Content)
	if !ok {
		return nil
	}

	log.Printf("🚫 Message %s from user %s in guild %s violates filter: %s",
		message.MessageID, message.AuthorID, message.GuildID, violation)

	if err := h.discordClient.DeleteMessage(ctx, message.ChannelID, message.MessageID); err != nil {
		return fmt.Errorf("failed to delete filtered message: %w", err)
	}

	botID := h.issuerID(ctx, scope)
	if _, err := h.infractionsService.CreateInfraction(
		ctx,
		message.GuildID,
		message.AuthorID,
		botID,
		models.InfractionTypeWarning,
		violation,
	); err != nil {
		return fmt.Errorf("failed to record filter infraction: %w", err)
	}

	return nil
}

func (h *MessageFilterHandler) findViolation(content string) (string, bool) {
	if inviteLinkRegex.MatchString(content) {
		return "posted an invite link", true
	}

	lowered := strings.ToLower(content)
	for _, term := range h.bannedTerms {
		if term != "" && strings.Contains(lowered, strings.ToLower(term)) {
			return fmt.Sprintf("used banned term %q", term), true
		}
	}

	return "", false
}

// issuerID resolves the bot's identity for the infraction record, cached in
// the dispatch scope so editing and filtering within one dispatch share it.
func (h *MessageFilterHandler) issuerID(ctx context.Context, scope *dispatch.Scope) string {
	const cacheKey = "moderation.bot_user_id"
	if cached, ok := scope.CacheGet(cacheKey); ok {
		return cached.(string)
	}

	botUser, err := h.discordClient.GetBotUser(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to fetch bot user for infraction issuer: %v", err)
		return "system"
	}

	scope.CachePut(cacheKey, botUser.ID)
	return botUser.ID
}
