package behaviors

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"modbot/clients"
	"modbot/models"
)

// MessageBehavior bridges the message create/update/delete gateway callbacks
// into notifications.
type MessageBehavior struct {
	session    clients.GatewaySession
	dispatcher Dispatcher
	removeFns  []func()
}

func NewMessageBehavior(session clients.GatewaySession, dispatcher Dispatcher) *MessageBehavior {
	return &MessageBehavior{
		session:    session,
		dispatcher: dispatcher,
	}
}

func (b *MessageBehavior) Name() string {
	return "messages"
}

func (b *MessageBehavior) Start() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.handleMessageCreate),
		b.session.AddHandler(b.handleMessageUpdate),
		b.session.AddHandler(b.handleMessageDelete),
	)
	return nil
}

func (b *MessageBehavior) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
}

func (b *MessageBehavior) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	message, ok := adaptMessage(m.Message)
	if !ok {
		log.Printf("⏭️ Dropping message create event with missing fields")
		return
	}

	notification, err := models.NewMessageReceivedNotification(message)
	if err != nil {
		log.Printf("❌ Failed to build message received notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}

func (b *MessageBehavior) handleMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	updated, ok := adaptMessage(m.Message)
	if !ok {
		log.Printf("⏭️ Dropping message update event with missing fields")
		return
	}

	// The prior revision only exists while the state cache still holds it
	old := mo.None[models.Message]()
	if m.BeforeUpdate != nil {
		if before, beforeOK := adaptMessage(m.BeforeUpdate); beforeOK {
			old = mo.Some(before)
		}
	}

	notification, err := models.NewMessageUpdatedNotification(old, updated)
	if err != nil {
		log.Printf("❌ Failed to build message updated notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}

func (b *MessageBehavior) handleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	notification, err := models.NewMessageDeletedNotification(m.GuildID, m.ChannelID, m.ID)
	if err != nil {
		log.Printf("⏭️ Dropping message delete event with missing fields: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}
