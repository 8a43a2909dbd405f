package behaviors

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"modbot/clients"
	"modbot/models"
)

// AuditLogBehavior bridges the guild audit log entry create gateway callback
// into notifications.
type AuditLogBehavior struct {
	session    clients.GatewaySession
	dispatcher Dispatcher
	removeFns  []func()
}

func NewAuditLogBehavior(session clients.GatewaySession, dispatcher Dispatcher) *AuditLogBehavior {
	return &AuditLogBehavior{
		session:    session,
		dispatcher: dispatcher,
	}
}

func (b *AuditLogBehavior) Name() string {
	return "auditlog"
}

func (b *AuditLogBehavior) Start() error {
	b.removeFns = append(b.removeFns,
		b.session.AddHandler(b.handleAuditLogEntryCreate),
	)
	return nil
}

func (b *AuditLogBehavior) Stop() {
	for _, remove := range b.removeFns {
		remove()
	}
	b.removeFns = nil
}

func (b *AuditLogBehavior) handleAuditLogEntryCreate(
	s *discordgo.Session,
	e *discordgo.GuildAuditLogEntryCreate,
) {
	entry, ok := adaptAuditLogEntry(e.GuildID, e.AuditLogEntry)
	if !ok {
		log.Printf("⏭️ Dropping audit log event with missing fields")
		return
	}

	notification, err := models.NewAuditLogCreatedNotification(entry)
	if err != nil {
		log.Printf("❌ Failed to build audit log notification: %v", err)
		return
	}

	b.dispatcher.Dispatch(notification)
}
