package moderation

import (
	"context"
	"fmt"
	"log"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// AuditLogSyncHandler mirrors out-of-band moderation actions (bans and kicks
// performed directly through the platform UI) into the infraction history so
// the record stays complete.
type AuditLogSyncHandler struct {
	infractionsService services.InfractionsService
}

func NewAuditLogSyncHandler(infractionsService services.InfractionsService) *AuditLogSyncHandler {
	return &AuditLogSyncHandler{infractionsService: infractionsService}
}

func (h *AuditLogSyncHandler) Name() string {
	return "moderation.auditlog_sync"
}

func (h *AuditLogSyncHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	auditNotification, ok := notification.(models.AuditLogCreatedNotification)
	if !ok {
		return nil
	}
	entry := auditNotification.Entry

	var infractionType models.InfractionType
	switch entry.Action {
	case models.AuditLogActionBan:
		infractionType = models.InfractionTypeBan
	case models.AuditLogActionKick:
		infractionType = models.InfractionTypeKick
	default:
		return nil
	}

	maybeInfraction, err := h.infractionsService.CreateInfractionFromAuditLog(ctx, entry, infractionType)
	if err != nil {
		return fmt.Errorf("failed to sync audit log entry %s: %w", entry.EntryID, err)
	}

	if infraction, present := maybeInfraction.Get(); present {
		log.Printf("📝 Synced %s of user %s as infraction %s", entry.Action, entry.TargetID, infraction.ID)
	}
	return nil
}
