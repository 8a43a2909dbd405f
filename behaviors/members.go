package behaviors

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"modbot/clients"
	"modbot/models"
)

// MemberBehavior bridges the guild member add/remove gateway callbacks into
// notifications.
type MemberBehavior struct {
	session    clients.GatewaySession
	dispatcher Dispatcher
	removeFns  []func()
}

func NewMemberBehavior(session clients.GatewaySession, dispatcher Dispatcher) *MemberBehavior {
	return &MemberBehavior{
		session:    session,
		dispatcher: dispatcher,
	}
}

func (b *MemberBehavior) Name() string {
	return "members"
}

func (b *MemberBehavior) Start() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.handleMemberAdd),
		b.session.AddHandler(b.handleMemberRemove),
	)
	return nil
}

func (b *MemberBehavior) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
}

func (b *MemberBehavior) handleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	member, ok := adaptMember(m.GuildID, m.Member)
	if !ok {
		log.Printf("⏭️ Dropping member add event with missing fields")
		return
	}

	notification, err := models.NewUserJoinedNotification(member)
	if err != nil {
		log.Printf("❌ Failed to build user joined notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}

func (b *MemberBehavior) handleMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	member, ok := adaptMember(m.GuildID, m.Member)
	if !ok {
		log.Printf("⏭️ Dropping member remove event with missing fields")
		return
	}

	notification, err := models.NewUserLeftNotification(member)
	if err != nil {
		log.Printf("❌ Failed to build user left notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}
