package behaviors

import (
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"

	"modbot/models"
)

// customEmojiRegex matches custom emoji uses in message content, e.g.
// <:partyparrot:1234> or animated <a:blob:5678>.
var customEmojiRegex = regexp.MustCompile(`<a?:([A-Za-z0-9_~]+):\d+>`)

// adaptMessage maps a raw gateway message to the internal model. Returns
// false when required fields are missing - such callbacks are dropped
// without dispatching, an accepted lossy edge case.
func adaptMessage(message *discordgo.Message) (models.Message, bool) {
	if message == nil || message.Author == nil {
		return models.Message{}, false
	}
	if message.GuildID == "" || message.ChannelID == "" || message.ID == "" {
		return models.Message{}, false
	}

	mentions := make([]string, 0, len(message.Mentions))
	for _, mention := range message.Mentions {
		if mention != nil {
			mentions = append(mentions, mention.ID)
		}
	}

	return models.Message{
		GuildID:    message.GuildID,
		ChannelID:  message.ChannelID,
		MessageID:  message.ID,
		AuthorID:   message.Author.ID,
		Content:    message.Content,
		IsBot:      message.Author.Bot,
		Mentions:   mentions,
		EmojiNames: extractEmojiNames(message.Content),
		Timestamp:  messageTimestamp(message),
	}, true
}

func extractEmojiNames(content string) []string {
	matches := customEmojiRegex.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

func messageTimestamp(message *discordgo.Message) time.Time {
	if message.Timestamp.IsZero() {
		return time.Now()
	}
	return message.Timestamp
}

// adaptReaction maps a raw reaction payload to the internal model.
func adaptReaction(reaction *discordgo.MessageReaction) (models.Reaction, bool) {
	if reaction == nil {
		return models.Reaction{}, false
	}
	if reaction.GuildID == "" || reaction.ChannelID == "" ||
		reaction.MessageID == "" || reaction.UserID == "" || reaction.Emoji.Name == "" {
		return models.Reaction{}, false
	}

	return models.Reaction{
		GuildID:   reaction.GuildID,
		ChannelID: reaction.ChannelID,
		MessageID: reaction.MessageID,
		UserID:    reaction.UserID,
		EmojiName: reaction.Emoji.Name,
	}, true
}

// adaptMember maps a raw guild member payload to the internal model.
func adaptMember(guildID string, member *discordgo.Member) (models.Member, bool) {
	if member == nil || member.User == nil || guildID == "" {
		return models.Member{}, false
	}

	return models.Member{
		GuildID:  guildID,
		UserID:   member.User.ID,
		Username: member.User.Username,
		RoleIDs:  member.Roles,
	}, true
}

// adaptChannel maps a raw channel payload to the internal model.
func adaptChannel(channel *discordgo.Channel) (models.Channel, bool) {
	if channel == nil || channel.GuildID == "" || channel.ID == "" {
		return models.Channel{}, false
	}

	return models.Channel{
		GuildID:   channel.GuildID,
		ChannelID: channel.ID,
		Name:      channel.Name,
		Topic:     channel.Topic,
		IsThread:  channel.IsThread(),
	}, true
}

// adaptAuditLogEntry maps a raw audit log entry to the internal model,
// collapsing the SDK's action codes into the actions the features care about.
func adaptAuditLogEntry(guildID string, entry *discordgo.AuditLogEntry) (models.AuditLogEntry, bool) {
	if entry == nil || guildID == "" || entry.ID == "" {
		return models.AuditLogEntry{}, false
	}

	action := models.AuditLogActionOther
	if entry.ActionType != nil {
		switch *entry.ActionType {
		case discordgo.AuditLogActionMemberBanAdd:
			action = models.AuditLogActionBan
		case discordgo.AuditLogActionMemberBanRemove:
			action = models.AuditLogActionUnban
		case discordgo.AuditLogActionMemberKick:
			action = models.AuditLogActionKick
		case discordgo.AuditLogActionMemberUpdate:
			action = models.AuditLogActionMemberMod
		}
	}

	return models.AuditLogEntry{
		GuildID:  guildID,
		EntryID:  entry.ID,
		ActorID:  entry.UserID,
		TargetID: entry.TargetID,
		Action:   action,
		Reason:   entry.Reason,
	}, true
}
