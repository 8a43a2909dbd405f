package clients

import "context"

// GatewaySession is the subscription surface of the Discord gateway
// connection. AddHandler returns a function that removes exactly the callback
// it registered. *discordgo.Session satisfies this interface.
type GatewaySession interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
}

// DiscordClient wraps the outbound Discord REST API calls the features need.
// Implementations are thin adapters over the SDK; everything behind this
// boundary is external to the dispatch pipeline.
type DiscordClient interface {
	GetBotUser(ctx context.Context) (*BotUser, error)
	GetGuildMember(ctx context.Context, guildID, userID string) (*GuildMember, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}
