package claims

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockClaimsService is a mock implementation of the ClaimsService interface
type MockClaimsService struct {
	mock.Mock
}

func (m *MockClaimsService) GetClaimsForRoles(
	ctx context.Context,
	guildID string,
	roleIDs []string,
) ([]models.Claim, error) {
	args := m.Called(ctx, guildID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockClaimsService) CreateClaimMapping(
	ctx context.Context,
	guildID, roleID string,
	claim models.Claim,
) (*models.ClaimMapping, error) {
	args := m.Called(ctx, guildID, roleID, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClaimMapping), args.Error(1)
}

func (m *MockClaimsService) DeleteClaimMapping(
	ctx context.Context,
	guildID, roleID string,
	claim models.Claim,
) error {
	args := m.Called(ctx, guildID, roleID, claim)
	return args.Error(0)
}
