package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresEmojiStatsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresEmojiStatsRepository(db *sqlx.DB, schema string) *PostgresEmojiStatsRepository {
	return &PostgresEmojiStatsRepository{db: db, schema: schema}
}

func (r *PostgresEmojiStatsRepository) IncrementEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.emoji_stats (id, guild_id, emoji_name, kind, uses_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, NOW(), NOW())
		ON CONFLICT (guild_id, emoji_name, kind)
		DO UPDATE SET uses_count = %s.emoji_stats.uses_count + 1, updated_at = NOW()`,
		r.schema, r.schema)

	if _, err := db.ExecContext(ctx, query, core.NewID("es"), guildID, emojiName, kind); err != nil {
		return fmt.Errorf("failed to increment emoji use: %w", err)
	}

	return nil
}

// DecrementEmojiUse reduces the counter without going below zero. Reaction
// removals for reactions added before tracking started land here.
func (r *PostgresEmojiStatsRepository) DecrementEmojiUse(
	ctx context.Context,
	guildID, emojiName string,
	kind models.EmojiUsageKind,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.emoji_stats
		SET uses_count = GREATEST(uses_count - 1, 0), updated_at = NOW()
		WHERE guild_id = $1 AND emoji_name = $2 AND kind = $3`, r.schema)

	if _, err := db.ExecContext(ctx, query, guildID, emojiName, kind); err != nil {
		return fmt.Errorf("failed to decrement emoji use: %w", err)
	}

	return nil
}

func (r *PostgresEmojiStatsRepository) GetTopEmojis(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.EmojiStat, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, guild_id, emoji_name, kind, uses_count, created_at, updated_at
		FROM %s.emoji_stats
		WHERE guild_id = $1 AND uses_count > 0
		ORDER BY uses_count DESC, emoji_name ASC
		LIMIT $2`, r.schema)

	stats := []*models.EmojiStat{}
	if err := db.SelectContext(ctx, &stats, query, guildID, limit); err != nil {
		return nil, fmt.Errorf("failed to get top emojis: %w", err)
	}

	return stats, nil
}
