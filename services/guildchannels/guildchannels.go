package guildchannels

import (
	"context"
	"fmt"
	"log"

	"modbot/db"
	"modbot/models"
)

type GuildChannelsService struct {
	guildChannelsRepo *db.PostgresGuildChannelsRepository
}

func NewGuildChannelsService(repo *db.PostgresGuildChannelsRepository) *GuildChannelsService {
	return &GuildChannelsService{guildChannelsRepo: repo}
}

func (s *GuildChannelsService) UpsertChannel(
	ctx context.Context,
	channel models.Channel,
) (*models.GuildChannel, error) {
	if channel.GuildID == "" || channel.ChannelID == "" {
		return nil, fmt.Errorf("guild_id and channel_id cannot be empty")
	}

	tracked, err := s.guildChannelsRepo.UpsertChannel(
		ctx, channel.GuildID, channel.ChannelID, channel.Name, channel.Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert channel: %w", err)
	}

	log.Printf("📺 Tracked channel %s (%s) in guild %s", channel.Name, channel.ChannelID, channel.GuildID)
	return tracked, nil
}
