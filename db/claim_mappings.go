package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"modbot/core"
	dbtx "modbot/db/tx"
	"modbot/models"
)

type PostgresClaimMappingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for claim_mappings table
var claimMappingsColumns = []string{
	"id",
	"guild_id",
	"role_id",
	"claim",
	"created_at",
	"updated_at",
}

func NewPostgresClaimMappingsRepository(db *sqlx.DB, schema string) *PostgresClaimMappingsRepository {
	return &PostgresClaimMappingsRepository{db: db, schema: schema}
}

func (r *PostgresClaimMappingsRepository) GetClaimsForRoleIDs(
	ctx context.Context,
	guildID string,
	roleIDs []string,
) ([]models.Claim, error) {
	if len(roleIDs) == 0 {
		return []models.Claim{}, nil
	}

	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT DISTINCT claim
		FROM %s.claim_mappings
		WHERE guild_id = $1 AND role_id = ANY($2)
		ORDER BY claim`, r.schema)

	claims := []models.Claim{}
	if err := db.SelectContext(ctx, &claims, query, guildID, pq.Array(roleIDs)); err != nil {
		return nil, fmt.Errorf("failed to get claims for roles: %w", err)
	}

	return claims, nil
}

func (r *PostgresClaimMappingsRepository) CreateClaimMapping(
	ctx context.Context,
	mapping *models.ClaimMapping,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	if mapping.ID == "" {
		mapping.ID = core.NewID("cm")
	}

	columnsStr := strings.Join(claimMappingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.claim_mappings (%s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	if err := db.QueryRowxContext(ctx, query,
		mapping.ID, mapping.GuildID, mapping.RoleID, mapping.Claim).StructScan(mapping); err != nil {
		return fmt.Errorf("failed to create claim mapping: %w", err)
	}

	return nil
}

// DeleteClaimMapping removes a mapping and returns false when no such
// mapping existed.
func (r *PostgresClaimMappingsRepository) DeleteClaimMapping(
	ctx context.Context,
	guildID, roleID string,
	claim models.Claim,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s.claim_mappings
		WHERE guild_id = $1 AND role_id = $2 AND claim = $3`, r.schema)

	result, err := db.ExecContext(ctx, query, guildID, roleID, claim)
	if err != nil {
		return false, fmt.Errorf("failed to delete claim mapping: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}
