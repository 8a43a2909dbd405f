package behaviors

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"modbot/clients"
	"modbot/models"
)

// ReactionBehavior bridges the reaction add/remove gateway callbacks into
// notifications.
type ReactionBehavior struct {
	session    clients.GatewaySession
	dispatcher Dispatcher
	removeFns  []func()
}

func NewReactionBehavior(session clients.GatewaySession, dispatcher Dispatcher) *ReactionBehavior {
	return &ReactionBehavior{
		session:    session,
		dispatcher: dispatcher,
	}
}

func (b *ReactionBehavior) Name() string {
	return "reactions"
}

func (b *ReactionBehavior) Start() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.handleReactionAdd),
		b.session.AddHandler(b.handleReactionRemove),
	)
	return nil
}

func (b *ReactionBehavior) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
}

func (b *ReactionBehavior) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	reaction, ok := adaptReaction(r.MessageReaction)
	if !ok {
		log.Printf("⏭️ Dropping reaction add event with missing fields")
		return
	}

	notification, err := models.NewReactionAddedNotification(reaction)
	if err != nil {
		log.Printf("❌ Failed to build reaction added notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}

func (b *ReactionBehavior) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	reaction, ok := adaptReaction(r.MessageReaction)
	if !ok {
		log.Printf("⏭️ Dropping reaction remove event with missing fields")
		return
	}

	notification, err := models.NewReactionRemovedNotification(reaction)
	if err != nil {
		log.Printf("❌ Failed to build reaction removed notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}
