package memberships

import (
	"context"
	"fmt"
	"log"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// MembershipHandler keeps the guild membership roster in sync with join and
// leave events.
type MembershipHandler struct {
	guildUsersService services.GuildUsersService
}

func NewMembershipHandler(guildUsersService services.GuildUsersService) *MembershipHandler {
	return &MembershipHandler{guildUsersService: guildUsersService}
}

func (h *MembershipHandler) Name() string {
	return "memberships.roster"
}

func (h *MembershipHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	switch n := notification.(type) {
	case models.UserJoinedNotification:
		member := n.Member
		if _, err := h.guildUsersService.RecordJoin(ctx, member.GuildID, member.UserID, member.Username); err != nil {
			return fmt.Errorf("failed to record join of %s: %w", member.UserID, err)
		}
		log.Printf("👋 User %s joined guild %s", member.UserID, member.GuildID)
		return nil
	case models.UserLeftNotification:
		member := n.Member
		if err := h.guildUsersService.RecordLeave(ctx, member.GuildID, member.UserID); err != nil {
			return fmt.Errorf("failed to record leave of %s: %w", member.UserID, err)
		}
		log.Printf("👋 User %s left guild %s", member.UserID, member.GuildID)
		return nil
	default:
		return nil
	}
}
