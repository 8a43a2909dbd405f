package testutils

import (
	"fmt"
	"math/rand"
	"time"

	"modbot/models"
)

// generateSnowflake returns a random Discord-shaped numeric ID
func generateSnowflake() string {
	return fmt.Sprintf("%d", 100000000000000000+rand.Int63n(899999999999999999))
}

func GenerateGuildID() string   { return generateSnowflake() }
func GenerateChannelID() string { return generateSnowflake() }
func GenerateMessageID() string { return generateSnowflake() }
func GenerateUserID() string    { return generateSnowflake() }
func GenerateRoleID() string    { return generateSnowflake() }

// NewTestMessage builds a valid guild message with unique IDs. Overrides are
// applied by mutating the returned value.
func NewTestMessage(guildID string) models.Message {
	return models.Message{
		GuildID:   guildID,
		ChannelID: GenerateChannelID(),
		MessageID: GenerateMessageID(),
		AuthorID:  GenerateUserID(),
		Content:   "hello there",
		Timestamp: time.Now().UTC(),
	}
}

// NewTestReaction builds a valid reaction with unique IDs
func NewTestReaction(guildID, emojiName string) models.Reaction {
	return models.Reaction{
		GuildID:   guildID,
		ChannelID: GenerateChannelID(),
		MessageID: GenerateMessageID(),
		UserID:    GenerateUserID(),
		EmojiName: emojiName,
	}
}

// NewTestMember builds a valid guild member with unique IDs
func NewTestMember(guildID string) models.Member {
	return models.Member{
		GuildID:  guildID,
		UserID:   GenerateUserID(),
		Username: "testuser",
	}
}
