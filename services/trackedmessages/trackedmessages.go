package trackedmessages

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"modbot/db"
	"modbot/models"
)

// DefaultTTL is how long a tracked message stays removable by reaction.
const DefaultTTL = 60 * time.Minute

type TrackedMessagesService struct {
	trackedMessagesRepo *db.PostgresTrackedMessagesRepository
}

func NewTrackedMessagesService(repo *db.PostgresTrackedMessagesRepository) *TrackedMessagesService {
	return &TrackedMessagesService{trackedMessagesRepo: repo}
}

func (s *TrackedMessagesService) TrackMessage(
	ctx context.Context,
	guildID, channelID, messageID, requesterUserID string,
	ttl time.Duration,
) (*models.TrackedMessage, error) {
	if guildID == "" || channelID == "" || messageID == "" || requesterUserID == "" {
		return nil, fmt.Errorf("guild, channel, message and requester IDs cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	tracked := &models.TrackedMessage{
		GuildID:         guildID,
		ChannelID:       channelID,
		MessageID:       messageID,
		RequesterUserID: requesterUserID,
		ExpiresAt:       time.Now().Add(ttl),
	}

	if err := s.trackedMessagesRepo.CreateTrackedMessage(ctx, tracked); err != nil {
		return nil, fmt.Errorf("failed to track message: %w", err)
	}

	log.Printf("📌 Tracking removable message %s in channel %s until %s",
		messageID, channelID, tracked.ExpiresAt.Format(time.RFC3339))
	return tracked, nil
}

func (s *TrackedMessagesService) GetTrackedMessage(
	ctx context.Context,
	guildID, messageID string,
) (mo.Option[*models.TrackedMessage], error) {
	if guildID == "" || messageID == "" {
		return mo.None[*models.TrackedMessage](), fmt.Errorf(
			"guild_id and message_id cannot be empty")
	}

	maybeTracked, err := s.trackedMessagesRepo.GetTrackedMessage(ctx, guildID, messageID)
	if err != nil {
		return mo.None[*models.TrackedMessage](), fmt.Errorf(
			"failed to get tracked message: %w", err)
	}

	return maybeTracked, nil
}

func (s *TrackedMessagesService) UntrackMessage(ctx context.Context, guildID, messageID string) error {
	if guildID == "" || messageID == "" {
		return fmt.Errorf("guild_id and message_id cannot be empty")
	}

	if err := s.trackedMessagesRepo.DeleteTrackedMessage(ctx, guildID, messageID); err != nil {
		return fmt.Errorf("failed to untrack message: %w", err)
	}

	return nil
}

// PurgeExpired drops tracking rows past their expiry. Runs periodically from
// the background loop in cmd.
func (s *TrackedMessagesService) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.trackedMessagesRepo.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tracked messages: %w", err)
	}

	if purged > 0 {
		log.Printf("🧹 Purged %d expired tracked messages", purged)
	}
	return purged, nil
}
