package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"modbot/clients"
)

// DiscordClient implements the clients.DiscordClient interface over a shared
// discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an already-configured discordgo session. The session
// is shared with the gateway behaviors; this wrapper only issues REST calls.
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// GetBotUser fetches the bot's own user identity
func (c *DiscordClient) GetBotUser(ctx context.Context) (*clients.BotUser, error) {
	user, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("bot user not found")
	}

	return &clients.BotUser{
		ID:       user.ID,
		Username: user.Username,
	}, nil
}

// GetGuildMember fetches a member and their current roles in a guild
func (c *DiscordClient) GetGuildMember(
	ctx context.Context,
	guildID, userID string,
) (*clients.GuildMember, error) {
	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s in guild %s: %w", userID, guildID, err)
	}
	if member == nil || member.User == nil {
		return nil, fmt.Errorf("member %s not found in guild %s", userID, guildID)
	}

	return &clients.GuildMember{
		UserID:   member.User.ID,
		Username: member.User.Username,
		RoleIDs:  member.Roles,
	}, nil
}

// DeleteMessage removes a message from a channel
func (c *DiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	err := c.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete message %s in channel %s: %w", messageID, channelID, err)
	}
	return nil
}
