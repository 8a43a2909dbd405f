package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresTrackedMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for tracked_messages table
var trackedMessagesColumns = []string{
	"id",
	"guild_id",
	"channel_id",
	"message_id",
	"requester_user_id",
	"expires_at",
	"created_at",
}

func NewPostgresTrackedMessagesRepository(db *sqlx.DB, schema string) *PostgresTrackedMessagesRepository {
	return &PostgresTrackedMessagesRepository{db: db, schema: schema}
}

func (r *PostgresTrackedMessagesRepository) CreateTrackedMessage(
	ctx context.Context,
	tracked *models.TrackedMessage,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	if tracked.ID == "" {
		tracked.ID = core.NewID("tm")
	}

	columnsStr := strings.Join(trackedMessagesColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.tracked_messages (%s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	if err := db.QueryRowxContext(ctx, query,
		tracked.ID,
		tracked.GuildID,
		tracked.ChannelID,
		tracked.MessageID,
		tracked.RequesterUserID,
		tracked.ExpiresAt,
	).StructScan(tracked); err != nil {
		return fmt.Errorf("failed to create tracked message: %w", err)
	}

	return nil
}

// GetTrackedMessage returns the tracking row for a message, skipping rows
// past their expiry.
func (r *PostgresTrackedMessagesRepository) GetTrackedMessage(
	ctx context.Context,
	guildID, messageID string,
) (mo.Option[*models.TrackedMessage], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(trackedMessagesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.tracked_messages
		WHERE guild_id = $1 AND message_id = $2 AND expires_at > NOW()`, returningStr, r.schema)

	tracked := &models.TrackedMessage{}
	err := db.QueryRowxContext(ctx, query, guildID, messageID).StructScan(tracked)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.TrackedMessage](), nil
		}
		return mo.None[*models.TrackedMessage](), fmt.Errorf("failed to get tracked message: %w", err)
	}

	return mo.Some(tracked), nil
}

func (r *PostgresTrackedMessagesRepository) DeleteTrackedMessage(
	ctx context.Context,
	guildID, messageID string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s.tracked_messages
		WHERE guild_id = $1 AND message_id = $2`, r.schema)

	if _, err := db.ExecContext(ctx, query, guildID, messageID); err != nil {
		return fmt.Errorf("failed to delete tracked message: %w", err)
	}

	return nil
}

func (r *PostgresTrackedMessagesRepository) DeleteExpiredBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s.tracked_messages
		WHERE expires_at <= $1`, r.schema)

	result, err := db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tracked messages: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows, nil
}
