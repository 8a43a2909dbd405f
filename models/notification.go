package models

import (
	"fmt"

	"github.com/samber/mo"
)

// NotificationType identifies one variant of the closed Notification set.
type NotificationType string

const (
	NotificationMessageReceived NotificationType = "message_received"
	NotificationMessageUpdated  NotificationType = "message_updated"
	NotificationMessageDeleted  NotificationType = "message_deleted"
	NotificationReactionAdded   NotificationType = "reaction_added"
	NotificationReactionRemoved NotificationType = "reaction_removed"
	NotificationUserJoined      NotificationType = "user_joined"
	NotificationUserLeft        NotificationType = "user_left"
	NotificationChannelCreated  NotificationType = "channel_created"
	NotificationChannelUpdated  NotificationType = "channel_updated"
	NotificationAuditLogCreated NotificationType = "audit_log_created"
)

// Notification is one adapted gateway event, immutable once constructed.
// The variant set is closed - only the types in this package implement it.
type Notification interface {
	Type() NotificationType
	// GuildID returns the guild the event originated from
	GuildID() string
	// ActorID returns the acting user behind the event, if any.
	// System-originated events carry no actor.
	ActorID() mo.Option[string]

	isNotification()
}

type MessageReceivedNotification struct {
	Message Message
}

func (n MessageReceivedNotification) Type() NotificationType { return NotificationMessageReceived }
func (n MessageReceivedNotification) GuildID() string        { return n.Message.GuildID }
func (n MessageReceivedNotification) ActorID() mo.Option[string] {
	return mo.Some(n.Message.AuthorID)
}
func (n MessageReceivedNotification) isNotification() {}

type MessageUpdatedNotification struct {
	// Old is the prior revision when the message cache still held it
	Old mo.Option[Message]
	New Message
}

func (n MessageUpdatedNotification) Type() NotificationType { return NotificationMessageUpdated }
func (n MessageUpdatedNotification) GuildID() string        { return n.New.GuildID }
func (n MessageUpdatedNotification) ActorID() mo.Option[string] {
	return mo.Some(n.New.AuthorID)
}
func (n MessageUpdatedNotification) isNotification() {}

type MessageDeletedNotification struct {
	GuildIDValue string
	ChannelID    string
	MessageID    string
}

func (n MessageDeletedNotification) Type() NotificationType     { return NotificationMessageDeleted }
func (n MessageDeletedNotification) GuildID() string            { return n.GuildIDValue }
func (n MessageDeletedNotification) ActorID() mo.Option[string] { return mo.None[string]() }
func (n MessageDeletedNotification) isNotification()            {}

type ReactionAddedNotification struct {
	Reaction Reaction
}

func (n ReactionAddedNotification) Type() NotificationType { return NotificationReactionAdded }
func (n ReactionAddedNotification) GuildID() string        { return n.Reaction.GuildID }
func (n ReactionAddedNotification) ActorID() mo.Option[string] {
	return mo.Some(n.Reaction.UserID)
}
func (n ReactionAddedNotification) isNotification() {}

type ReactionRemovedNotification struct {
	Reaction Reaction
}

func (n ReactionRemovedNotification) Type() NotificationType { return NotificationReactionRemoved }
func (n ReactionRemovedNotification) GuildID() string        { return n.Reaction.GuildID }
func (n ReactionRemovedNotification) ActorID() mo.Option[string] {
	return mo.Some(n.Reaction.UserID)
}
func (n ReactionRemovedNotification) isNotification() {}

type UserJoinedNotification struct {
	Member Member
}

func (n UserJoinedNotification) Type() NotificationType     { return NotificationUserJoined }
func (n UserJoinedNotification) GuildID() string            { return n.Member.GuildID }
func (n UserJoinedNotification) ActorID() mo.Option[string] { return mo.Some(n.Member.UserID) }
func (n UserJoinedNotification) isNotification()            {}

type UserLeftNotification struct {
	Member Member
}

func (n UserLeftNotification) Type() NotificationType     { return NotificationUserLeft }
func (n UserLeftNotification) GuildID() string            { return n.Member.GuildID }
func (n UserLeftNotification) ActorID() mo.Option[string] { return mo.Some(n.Member.UserID) }
func (n UserLeftNotification) isNotification()            {}

type ChannelCreatedNotification struct {
	Channel Channel
}

func (n ChannelCreatedNotification) Type() NotificationType     { return NotificationChannelCreated }
func (n ChannelCreatedNotification) GuildID() string            { return n.Channel.GuildID }
func (n ChannelCreatedNotification) ActorID() mo.Option[string] { return mo.None[string]() }
func (n ChannelCreatedNotification) isNotification()            {}

type ChannelUpdatedNotification struct {
	Channel Channel
}

func (n ChannelUpdatedNotification) Type() NotificationType     { return NotificationChannelUpdated }
func (n ChannelUpdatedNotification) GuildID() string            { return n.Channel.GuildID }
func (n ChannelUpdatedNotification) ActorID() mo.Option[string] { return mo.None[string]() }
func (n ChannelUpdatedNotification) isNotification()            {}

type AuditLogCreatedNotification struct {
	Entry AuditLogEntry
}

func (n AuditLogCreatedNotification) Type() NotificationType { return NotificationAuditLogCreated }
func (n AuditLogCreatedNotification) GuildID() string        { return n.Entry.GuildID }
func (n AuditLogCreatedNotification) ActorID() mo.Option[string] {
	if n.Entry.ActorID == "" {
		return mo.None[string]()
	}
	return mo.Some(n.Entry.ActorID)
}
func (n AuditLogCreatedNotification) isNotification() {}

// NewMessageReceivedNotification validates the adapted message and builds the
// notification. Construction fails when required fields are missing so that
// a partially populated event never reaches the dispatcher.
func NewMessageReceivedNotification(msg Message) (MessageReceivedNotification, error) {
	if err := validateMessage(msg); err != nil {
		return MessageReceivedNotification{}, err
	}
	return MessageReceivedNotification{Message: msg}, nil
}

func NewMessageUpdatedNotification(old mo.Option[Message], updated Message) (MessageUpdatedNotification, error) {
	if err := validateMessage(updated); err != nil {
		return MessageUpdatedNotification{}, err
	}
	return MessageUpdatedNotification{Old: old, New: updated}, nil
}

func NewMessageDeletedNotification(guildID, channelID, messageID string) (MessageDeletedNotification, error) {
	if guildID == "" || channelID == "" || messageID == "" {
		return MessageDeletedNotification{}, fmt.Errorf(
			"message deleted notification requires guild, channel and message IDs")
	}
	return MessageDeletedNotification{GuildIDValue: guildID, ChannelID: channelID, MessageID: messageID}, nil
}

func NewReactionAddedNotification(reaction Reaction) (ReactionAddedNotification, error) {
	if err := validateReaction(reaction); err != nil {
		return ReactionAddedNotification{}, err
	}
	return ReactionAddedNotification{Reaction: reaction}, nil
}

func NewReactionRemovedNotification(reaction Reaction) (ReactionRemovedNotification, error) {
	if err := validateReaction(reaction); err != nil {
		return ReactionRemovedNotification{}, err
	}
	return ReactionRemovedNotification{Reaction: reaction}, nil
}

func NewUserJoinedNotification(member Member) (UserJoinedNotification, error) {
	if err := validateMember(member); err != nil {
		return UserJoinedNotification{}, err
	}
	return UserJoinedNotification{Member: member}, nil
}

func NewUserLeftNotification(member Member) (UserLeftNotification, error) {
	if err := validateMember(member); err != nil {
		return UserLeftNotification{}, err
	}
	return UserLeftNotification{Member: member}, nil
}

func NewChannelCreatedNotification(channel Channel) (ChannelCreatedNotification, error) {
	if err := validateChannel(channel); err != nil {
		return ChannelCreatedNotification{}, err
	}
	return ChannelCreatedNotification{Channel: channel}, nil
}

func NewChannelUpdatedNotification(channel Channel) (ChannelUpdatedNotification, error) {
	if err := validateChannel(channel); err != nil {
		return ChannelUpdatedNotification{}, err
	}
	return ChannelUpdatedNotification{Channel: channel}, nil
}

func NewAuditLogCreatedNotification(entry AuditLogEntry) (AuditLogCreatedNotification, error) {
	if entry.GuildID == "" || entry.EntryID == "" {
		return AuditLogCreatedNotification{}, fmt.Errorf(
			"audit log notification requires guild and entry IDs")
	}
	return AuditLogCreatedNotification{Entry: entry}, nil
}

func validateMessage(msg Message) error {
	if msg.GuildID == "" || msg.ChannelID == "" || msg.MessageID == "" || msg.AuthorID == "" {
		return fmt.Errorf("message notification requires guild, channel, message and author IDs")
	}
	return nil
}

func validateReaction(reaction Reaction) error {
	if reaction.GuildID == "" || reaction.ChannelID == "" || reaction.MessageID == "" ||
		reaction.UserID == "" || reaction.EmojiName == "" {
		return fmt.Errorf("reaction notification requires guild, channel, message, user IDs and an emoji")
	}
	return nil
}

func validateMember(member Member) error {
	if member.GuildID == "" || member.UserID == "" {
		return fmt.Errorf("member notification requires guild and user IDs")
	}
	return nil
}

func validateChannel(channel Channel) error {
	if channel.GuildID == "" || channel.ChannelID == "" {
		return fmt.Errorf("channel notification requires guild and channel IDs")
	}
	return nil
}
