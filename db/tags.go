package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresTagsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for tags table
var tagsColumns = []string{
	"id",
	"guild_id",
	"name",
	"content",
	"owner_user_id",
	"uses_count",
	"last_used_at",
	"created_at",
	"updated_at",
}

func NewPostgresTagsRepository(db *sqlx.DB, schema string) *PostgresTagsRepository {
	return &PostgresTagsRepository{db: db, schema: schema}
}

func (r *PostgresTagsRepository) GetTagByName(
	ctx context.Context,
	guildID, name string,
) (mo.Option[*models.Tag], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(tagsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.tags
		WHERE guild_id = $1 AND name = LOWER($2)`, returningStr, r.schema)

	tag := &models.Tag{}
	err := db.QueryRowxContext(ctx, query, guildID, name).StructScan(tag)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Tag](), nil
		}
		return mo.None[*models.Tag](), fmt.Errorf("failed to get tag by name: %w", err)
	}

	return mo.Some(tag), nil
}

// IncrementTagUse bumps the use counter and returns false when no tag with
// that name exists in the guild.
func (r *PostgresTagsRepository) IncrementTagUse(
	ctx context.Context,
	guildID, name string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.tags
		SET uses_count = uses_count + 1, last_used_at = NOW(), updated_at = NOW()
		WHERE guild_id = $1 AND name = LOWER($2)`, r.schema)

	result, err := db.ExecContext(ctx, query, guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to increment tag use: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

func (r *PostgresTagsRepository) GetTopTagsByUses(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.TagUsageStat, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT name, uses_count
		FROM %s.tags
		WHERE guild_id = $1 AND uses_count > 0
		ORDER BY uses_count DESC, name ASC
		LIMIT $2`, r.schema)

	stats := []*models.TagUsageStat{}
	if err := db.SelectContext(ctx, &stats, query, guildID, limit); err != nil {
		return nil, fmt.Errorf("failed to get top tags: %w", err)
	}

	return stats, nil
}
