package services

import (
	"context"
	"time"

	"github.com/samber/mo"

	"modbot/models"
)

// ClaimsService defines the interface for role-to-claim resolution and
// claim mapping management
type ClaimsService interface {
	GetClaimsForRoles(ctx context.Context, guildID string, roleIDs []string) ([]models.Claim, error)
	CreateClaimMapping(ctx context.Context, guildID, roleID string, claim models.Claim) (*models.ClaimMapping, error)
	DeleteClaimMapping(ctx context.Context, guildID, roleID string, claim models.Claim) error
}

// InfractionsService defines the interface for moderation infraction operations
type InfractionsService interface {
	CreateInfraction(
		ctx context.Context,
		guildID, subjectUserID, issuerUserID string,
		infractionType models.InfractionType,
		reason string,
	) (*models.Infraction, error)
	CreateInfractionFromAuditLog(
		ctx context.Context,
		entry models.AuditLogEntry,
		infractionType models.InfractionType,
	) (mo.Option[*models.Infraction], error)
	GetInfractionsBySubject(ctx context.Context, guildID, subjectUserID string) ([]*models.Infraction, error)
}

// TagsService defines the interface for tag operations
type TagsService interface {
	GetTagByName(ctx context.Context, guildID, name string) (mo.Option[*models.Tag], error)
	RecordTagUse(ctx context.Context, guildID, name string) (bool, error)
	GetTopTagsByUses(ctx context.Context, guildID string, limit int) ([]*models.TagUsageStat, error)
}

// EmojisService defines the interface for emoji usage statistics
type EmojisService interface {
	RecordEmojiUse(ctx context.Context, guildID, emojiName string, kind models.EmojiUsageKind) error
	RemoveEmojiUse(ctx context.Context, guildID, emojiName string, kind models.EmojiUsageKind) error
	GetTopEmojis(ctx context.Context, guildID string, limit int) ([]*models.EmojiStat, error)
}

// PromotionsService defines the interface for promotion campaign operations
type PromotionsService interface {
	GetActiveCampaignByPollMessage(
		ctx context.Context,
		guildID, pollMessageID string,
	) (mo.Option[*models.PromotionCampaign], error)
	RecordVote(
		ctx context.Context,
		campaignID, voterID string,
		sentiment models.PromotionVoteSentiment,
	) (*models.PromotionTally, error)
}

// TrackedMessagesService defines the interface for reaction-removable messages
type TrackedMessagesService interface {
	TrackMessage(
		ctx context.Context,
		guildID, channelID, messageID, requesterUserID string,
		ttl time.Duration,
	) (*models.TrackedMessage, error)
	GetTrackedMessage(ctx context.Context, guildID, messageID string) (mo.Option[*models.TrackedMessage], error)
	UntrackMessage(ctx context.Context, guildID, messageID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// GuildUsersService defines the interface for guild membership tracking
type GuildUsersService interface {
	RecordJoin(ctx context.Context, guildID, userID, username string) (*models.GuildUser, error)
	RecordLeave(ctx context.Context, guildID, userID string) error
}

// GuildChannelsService defines the interface for guild channel tracking
type GuildChannelsService interface {
	UpsertChannel(ctx context.Context, channel models.Channel) (*models.GuildChannel, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
