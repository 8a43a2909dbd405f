package infractions

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"modbot/db"
	"modbot/models"
)

type InfractionsService struct {
	infractionsRepo *db.PostgresInfractionsRepository
}

func NewInfractionsService(repo *db.PostgresInfractionsRepository) *InfractionsService {
	return &InfractionsService{infractionsRepo: repo}
}

func (s *InfractionsService) CreateInfraction(
	ctx context.Context,
	guildID, subjectUserID, issuerUserID string,
	infractionType models.InfractionType,
	reason string,
) (*models.Infraction, error) {
	log.Printf("📋 Starting to create %s infraction for user %s in guild %s",
		infractionType, subjectUserID, guildID)

	if guildID == "" || subjectUserID == "" || issuerUserID == "" {
		return nil, fmt.Errorf("guild_id, subject_user_id and issuer_user_id cannot be empty")
	}

	infraction := &models.Infraction{
		GuildID:       guildID,
		SubjectUserID: subjectUserID,
		IssuerUserID:  issuerUserID,
		Type:          infractionType,
		Reason:        reason,
	}

	if err := s.infractionsRepo.CreateInfraction(ctx, infraction); err != nil {
		return nil, fmt.Errorf("failed to create infraction: %w", err)
	}

	log.Printf("📋 Completed successfully - created infraction %s", infraction.ID)
	return infraction, nil
}

// CreateInfractionFromAuditLog syncs an out-of-band moderation action into
// the infraction history. Duplicate entries for the same audit log entry are
// skipped and None returned - gateway reconnects can replay audit events.
func (s *InfractionsService) CreateInfractionFromAuditLog(
	ctx context.Context,
	entry models.AuditLogEntry,
	infractionType models.InfractionType,
) (mo.Option[*models.Infraction], error) {
	log.Printf("📋 Starting to sync audit log entry %s (%s) in guild %s",
		entry.EntryID, entry.Action, entry.GuildID)

	if entry.GuildID == "" || entry.EntryID == "" || entry.TargetID == "" {
		return mo.None[*models.Infraction](), fmt.Errorf(
			"audit log entry requires guild, entry and target IDs")
	}

	maybeExisting, err := s.infractionsRepo.GetInfractionByAuditLogEntryID(ctx, entry.GuildID, entry.EntryID)
	if err != nil {
		return mo.None[*models.Infraction](), fmt.Errorf(
			"failed to check for existing infraction: %w", err)
	}
	if maybeExisting.IsPresent() {
		log.Printf("⏭️ Audit log entry %s already synced - skipping", entry.EntryID)
		return mo.None[*models.Infraction](), nil
	}

	entryID := entry.EntryID
	infraction := &models.Infraction{
		GuildID:         entry.GuildID,
		SubjectUserID:   entry.TargetID,
		IssuerUserID:    entry.ActorID,
		Type:            infractionType,
		Reason:          entry.Reason,
		AuditLogEntryID: &entryID,
	}

	if err := s.infractionsRepo.CreateInfraction(ctx, infraction); err != nil {
		return mo.None[*models.Infraction](), fmt.Errorf(
			"failed to create infraction from audit log: %w", err)
	}

	log.Printf("📋 Completed successfully - synced audit log entry %s as infraction %s",
		entry.EntryID, infraction.ID)
	return mo.Some(infraction), nil
}

func (s *InfractionsService) GetInfractionsBySubject(
	ctx context.Context,
	guildID, subjectUserID string,
) ([]*models.Infraction, error) {
	if guildID == "" || subjectUserID == "" {
		return nil, fmt.Errorf("guild_id and subject_user_id cannot be empty")
	}

	infractions, err := s.infractionsRepo.GetInfractionsBySubject(ctx, guildID, subjectUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get infractions by subject: %w", err)
	}

	return infractions, nil
}
