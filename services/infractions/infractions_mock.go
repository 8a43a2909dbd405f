package infractions

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockInfractionsService is a mock implementation of the InfractionsService interface
type MockInfractionsService struct {
	mock.Mock
}

func (m *MockInfractionsService) CreateInfraction(
	ctx context.Context,
	guildID, subjectUserID, issuerUserID string,
	infractionType models.InfractionType,
	reason string,
) (*models.Infraction, error) {
	args := m.Called(ctx, guildID, subjectUserID, issuerUserID, infractionType, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Infraction), args.Error(1)
}

func (m *MockInfractionsService) CreateInfractionFromAuditLog(
	ctx context.Context,
	entry models.AuditLogEntry,
	infractionType models.InfractionType,
) (mo.Option[*models.Infraction], error) {
	args := m.Called(ctx, entry, infractionType)
	return args.Get(0).(mo.Option[*models.Infraction]), args.Error(1)
}

func (m *MockInfractionsService) GetInfractionsBySubject(
	ctx context.Context,
	guildID, subjectUserID string,
) ([]*models.Infraction, error) {
	args := m.Called(ctx, guildID, subjectUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Infraction), args.Error(1)
}
