package claims

import (
	"context"
	"fmt"
	"log"

	"modbot/core"
	"modbot/db"
	"modbot/models"
)

type ClaimsService struct {
	claimMappingsRepo *db.PostgresClaimMappingsRepository
}

func NewClaimsService(repo *db.PostgresClaimMappingsRepository) *ClaimsService {
	return &ClaimsService{claimMappingsRepo: repo}
}

// GetClaimsForRoles resolves the claim set granted by a set of guild roles.
// No roles means no claims - there is no implicit grant.
func (s *ClaimsService) GetClaimsForRoles(
	ctx context.Context,
	guildID string,
	roleIDs []string,
) ([]models.Claim, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild_id cannot be empty")
	}

	if len(roleIDs) == 0 {
		return []models.Claim{}, nil
	}

	claims, err := s.claimMappingsRepo.GetClaimsForRoleIDs(ctx, guildID, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims for roles: %w", err)
	}

	log.Printf("🔐 Resolved %d claims from %d roles in guild %s", len(claims), len(roleIDs), guildID)
	return claims, nil
}

func (s *ClaimsService) CreateClaimMapping(
	ctx context.Context,
	guildID, roleID string,
	claim models.Claim,
) (*models.ClaimMapping, error) {
	log.Printf("📋 Starting to create claim mapping %s for role %s in guild %s", claim, roleID, guildID)

	if guildID == "" || roleID == "" {
		return nil, fmt.Errorf("guild_id and role_id cannot be empty")
	}
	if !claim.IsValid() {
		return nil, fmt.Errorf("unknown claim: %s", claim)
	}

	mapping := &models.ClaimMapping{
		GuildID: guildID,
		RoleID:  roleID,
		Claim:   claim,
	}
	if err := s.claimMappingsRepo.CreateClaimMapping(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to create claim mapping: %w", err)
	}

	log.Printf("📋 Completed successfully - created claim mapping %s", mapping.ID)
	return mapping, nil
}

func (s *ClaimsService) DeleteClaimMapping(
	ctx context.Context,
	guildID, roleID string,
	claim models.Claim,
) error {
	log.Printf("📋 Starting to delete claim mapping %s for role %s in guild %s", claim, roleID, guildID)

	if guildID == "" || roleID == "" {
		return fmt.Errorf("guild_id and role_id cannot be empty")
	}

	deleted, err := s.claimMappingsRepo.DeleteClaimMapping(ctx, guildID, roleID, claim)
	if err != nil {
		return fmt.Errorf("failed to delete claim mapping: %w", err)
	}
	if !deleted {
		return core.ErrNotFound
	}

	log.Printf("📋 Completed successfully - deleted claim mapping %s for role %s", claim, roleID)
	return nil
}
