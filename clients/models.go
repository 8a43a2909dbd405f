package clients

// BotUser is the bot's own user identity
type BotUser struct {
	ID       string
	Username string
}

// GuildMember is a guild member with their current role assignments
type GuildMember struct {
	UserID   string
	Username string
	RoleIDs  []string
}
