package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresGuildChannelsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guild_channels table
var guildChannelsColumns = []string{
	"id",
	"guild_id",
	"channel_id",
	"name",
	"topic",
	"created_at",
	"updated_at",
}

func NewPostgresGuildChannelsRepository(db *sqlx.DB, schema string) *PostgresGuildChannelsRepository {
	return &PostgresGuildChannelsRepository{db: db, schema: schema}
}

func (r *PostgresGuildChannelsRepository) UpsertChannel(
	ctx context.Context,
	guildID, channelID, name, topic string,
) (*models.GuildChannel, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(guildChannelsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_channels (%s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (guild_id, channel_id)
		DO UPDATE SET name = EXCLUDED.name, topic = EXCLUDED.topic, updated_at = NOW()
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	channel := &models.GuildChannel{}
	if err := db.QueryRowxContext(ctx, query,
		core.NewID("gc"), guildID, channelID, name, topic).StructScan(channel); err != nil {
		return nil, fmt.Errorf("failed to upsert guild channel: %w", err)
	}

	return channel, nil
}

func (r *PostgresGuildChannelsRepository) GetChannelsByGuild(
	ctx context.Context,
	guildID string,
) ([]*models.GuildChannel, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(guildChannelsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_channels
		WHERE guild_id = $1
		ORDER BY name ASC`, returningStr, r.schema)

	channels := []*models.GuildChannel{}
	if err := db.SelectContext(ctx, &channels, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to get channels by guild: %w", err)
	}

	return channels, nil
}
