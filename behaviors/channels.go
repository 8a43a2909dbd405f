package behaviors

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"modbot/clients"
	"modbot/models"
)

// ChannelBehavior bridges the channel create/update gateway callbacks into
// notifications.
type ChannelBehavior struct {
	session    clients.GatewaySession
	dispatcher Dispatcher
	removeFns  []func()
}

func NewChannelBehavior(session clients.GatewaySession, dispatcher Dispatcher) *ChannelBehavior {
	return &ChannelBehavior{
		session:    session,
		dispatcher: dispatcher,
	}
}

func (b *ChannelBehavior) Name() string {
	return "channels"
}

func (b *ChannelBehavior) Start() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.handleChannelCreate),
		b.session.AddHandler(b.handleChannelUpdate),
	)
	return nil
}

func (b *ChannelBehavior) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
}

func (b *ChannelBehavior) handleChannelCreate(s *discordgo.Session, c *discordgo.ChannelCreate) {
	channel, ok := adaptChannel(c.Channel)
	if !ok {
		log.Printf("⏭️ Dropping channel create event with missing fields")
		return
	}

	notification, err := models.NewChannelCreatedNotification(channel)
	if err != nil {
		log.Printf("❌ Failed to build channel created notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}

func (b *ChannelBehavior) handleChannelUpdate(s *discordgo.Session, c *discordgo.ChannelUpdate) {
	channel, ok := adaptChannel(c.Channel)
	if !ok {
		log.Printf("⏭️ Dropping channel update event with missing fields")
		return
	}

	notification, err := models.NewChannelUpdatedNotification(channel)
	if err != nil {
		log.Printf("❌ Failed to build channel updated notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}
