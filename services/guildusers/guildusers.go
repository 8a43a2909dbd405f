package guildusers

import (
	"context"
	"fmt"
	"log"

	"modbot/db"
	"modbot/models"
)

type GuildUsersService struct {
	guildUsersRepo *db.PostgresGuildUsersRepository
}

func NewGuildUsersService(repo *db.PostgresGuildUsersRepository) *GuildUsersService {
	return &GuildUsersService{guildUsersRepo: repo}
}

func (s *GuildUsersService) RecordJoin(
	ctx context.Context,
	guildID, userID, username string,
) (*models.GuildUser, error) {
	log.Printf("📋 Starting to record join of user %s in guild %s", userID, guildID)

	if guildID == "" || userID == "" {
		return nil, fmt.Errorf("guild_id and user_id cannot be empty")
	}

	user, err := s.guildUsersRepo.UpsertOnJoin(ctx, guildID, userID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to record join: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded join for guild user %s", user.ID)
	return user, nil
}

func (s *GuildUsersService) RecordLeave(ctx context.Context, guildID, userID string) error {
	log.Printf("📋 Starting to record leave of user %s in guild %s", userID, guildID)

	if guildID == "" || userID == "" {
		return fmt.Errorf("guild_id and user_id cannot be empty")
	}

	found, err := s.guildUsersRepo.MarkLeft(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to record leave: %w", err)
	}
	if !found {
		// User left before we ever saw them join; nothing to update
		log.Printf("⏭️ User %s was not tracked in guild %s - skipping leave", userID, guildID)
		return nil
	}

	log.Printf("📋 Completed successfully - recorded leave for user %s", userID)
	return nil
}
