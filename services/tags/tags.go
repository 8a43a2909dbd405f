package tags

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"

	"modbot/db"
	"modbot/models"
)

type TagsService struct {
	tagsRepo *db.PostgresTagsRepository
}

func NewTagsService(repo *db.PostgresTagsRepository) *TagsService {
	return &TagsService{tagsRepo: repo}
}

func (s *TagsService) GetTagByName(
	ctx context.Context,
	guildID, name string,
) (mo.Option[*models.Tag], error) {
	if guildID == "" || strings.TrimSpace(name) == "" {
		return mo.None[*models.Tag](), fmt.Errorf("guild_id and name cannot be empty")
	}

	maybeTag, err := s.tagsRepo.GetTagByName(ctx, guildID, name)
	if err != nil {
		return mo.None[*models.Tag](), fmt.Errorf("failed to get tag by name: %w", err)
	}

	return maybeTag, nil
}

// RecordTagUse bumps a tag's use counter. Returns false when the guild has no
// tag with this name - a message that merely looks like an invocation.
func (s *TagsService) RecordTagUse(ctx context.Context, guildID, name string) (bool, error) {
	if guildID == "" || strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("guild_id and name cannot be empty")
	}

	found, err := s.tagsRepo.IncrementTagUse(ctx, guildID, name)
	if err != nil {
		return false, fmt.Errorf("failed to record tag use: %w", err)
	}

	if found {
		log.Printf("🏷️ Recorded use of tag %q in guild %s", name, guildID)
	}
	return found, nil
}

func (s *TagsService) GetTopTagsByUses(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.TagUsageStat, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild_id cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	stats, err := s.tagsRepo.GetTopTagsByUses(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top tags: %w", err)
	}

	return stats, nil
}
