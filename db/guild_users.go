package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresGuildUsersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guild_users table
var guildUsersColumns = []string{
	"id",
	"guild_id",
	"user_id",
	"username",
	"first_seen_at",
	"last_joined_at",
	"left_at",
	"created_at",
	"updated_at",
}

func NewPostgresGuildUsersRepository(db *sqlx.DB, schema string) *PostgresGuildUsersRepository {
	return &PostgresGuildUsersRepository{db: db, schema: schema}
}

// UpsertOnJoin records a join, clearing any previous departure.
func (r *PostgresGuildUsersRepository) UpsertOnJoin(
	ctx context.Context,
	guildID, userID, username string,
) (*models.GuildUser, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(guildUsersColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_users (%s)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), NULL, NOW(), NOW())
		ON CONFLICT (guild_id, user_id)
		DO UPDATE SET username = EXCLUDED.username, last_joined_at = NOW(), left_at = NULL, updated_at = NOW()
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	user := &models.GuildUser{}
	if err := db.QueryRowxContext(ctx, query,
		core.NewID("gu"), guildID, userID, username).StructScan(user); err != nil {
		return nil, fmt.Errorf("failed to upsert guild user on join: %w", err)
	}

	return user, nil
}

// MarkLeft records a departure and returns false when the user was never tracked.
func (r *PostgresGuildUsersRepository) MarkLeft(
	ctx context.Context,
	guildID, userID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.guild_users
		SET left_at = NOW(), updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2`, r.schema)

	result, err := db.ExecContext(ctx, query, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to mark guild user left: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

func (r *PostgresGuildUsersRepository) GetGuildUser(
	ctx context.Context,
	guildID, userID string,
) (mo.Option[*models.GuildUser], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(guildUsersColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_users
		WHERE guild_id = $1 AND user_id = $2`, returningStr, r.schema)

	user := &models.GuildUser{}
	err := db.QueryRowxContext(ctx, query, guildID, userID).StructScan(user)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.GuildUser](), nil
		}
		return mo.None[*models.GuildUser](), fmt.Errorf("failed to get guild user: %w", err)
	}

	return mo.Some(user), nil
}
