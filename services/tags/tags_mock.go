package tags

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"modbot/models"
)

// MockTagsService is a mock implementation of the TagsService interface
type MockTagsService struct {
	mock.Mock
}

func (m *MockTagsService) GetTagByName(
	ctx context.Context,
	guildID, name string,
) (mo.Option[*models.Tag], error) {
	args := m.Called(ctx, guildID, name)
	return args.Get(0).(mo.Option[*models.Tag]), args.Error(1)
}

func (m *MockTagsService) RecordTagUse(ctx context.Context, guildID, name string) (bool, error) {
	args := m.Called(ctx, guildID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagsService) GetTopTagsByUses(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.TagUsageStat, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TagUsageStat), args.Error(1)
}
