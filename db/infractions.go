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

type PostgresInfractionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for infractions table
var infractionsColumns = []string{
	"id",
	"guild_id",
	"subject_user_id",
	"issuer_user_id",
	"type",
	"reason",
	"audit_log_entry_id",
	"created_at",
	"updated_at",
}

func NewPostgresInfractionsRepository(db *sqlx.DB, schema string) *PostgresInfractionsRepository {
	return &PostgresInfractionsRepository{db: db, schema: schema}
}

func (r *PostgresInfractionsRepository) CreateInfraction(
	ctx context.Context,
	infraction *models.Infraction,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	if infraction.ID == "" {
		infraction.ID = core.NewID("inf")
	}

	columnsStr := strings.Join(infractionsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.infractions (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	if err := db.QueryRowxContext(ctx, query,
		infraction.ID,
		infraction.GuildID,
		infraction.SubjectUserID,
		infraction.IssuerUserID,
		infraction.Type,
		infraction.Reason,
		infraction.AuditLogEntryID,
	).StructScan(infraction); err != nil {
		return fmt.Errorf("failed to create infraction: %w", err)
	}

	return nil
}

func (r *PostgresInfractionsRepository) GetInfractionsBySubject(
	ctx context.Context,
	guildID, subjectUserID string,
) ([]*models.Infraction, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(infractionsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.infractions
		WHERE guild_id = $1 AND subject_user_id = $2
		ORDER BY created_at DESC`, returningStr, r.schema)

	infractions := []*models.Infraction{}
	if err := db.SelectContext(ctx, &infractions, query, guildID, subjectUserID); err != nil {
		return nil, fmt.Errorf("failed to get infractions by subject: %w", err)
	}

	return infractions, nil
}

func (r *PostgresInfractionsRepository) GetInfractionByAuditLogEntryID(
	ctx context.Context,
	guildID, auditLogEntryID string,
) (mo.Option[*models.Infraction], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(infractionsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.infractions
		WHERE guild_id = $1 AND audit_log_entry_id = $2`, returningStr, r.schema)

	infraction := &models.Infraction{}
	err := db.QueryRowxContext(ctx, query, guildID, auditLogEntryID).StructScan(infraction)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Infraction](), nil
		}
		return mo.None[*models.Infraction](), fmt.Errorf(
			"failed to get infraction by audit log entry: %w", err)
	}

	return mo.Some(infraction), nil
}
