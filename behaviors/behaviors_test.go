package behaviors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modbot/models"
	"modbot/testutils"
)

// fakeGatewaySession records registered handlers and lets tests fire raw
// gateway events at them, mimicking the discordgo session contract.
type fakeGatewaySession struct {
	mu       sync.Mutex
	handlers []*registeredHandler
}

type registeredHandler struct {
	fn      interface{}
	removed bool
}

func (s *fakeGatewaySession) AddHandler(handler interface{}) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	registered := &registeredHandler{fn: handler}
	s.handlers = append(s.handlers, registered)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		registered.removed = true
	}
}

func (s *fakeGatewaySession) Open() error  { return nil }
func (s *fakeGatewaySession) Close() error { return nil }

func (s *fakeGatewaySession) fire(event interface{}) {
	s.mu.Lock()
	handlers := append([]*registeredHandler{}, s.handlers...)
	s.mu.Unlock()

	for _, registered := range handlers {
		if registered.removed {
			continue
		}
		switch fn := registered.fn.(type) {
		case func(*discordgo.Session, *discordgo.MessageCreate):
			if e, ok := event.(*discordgo.MessageCreate); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.MessageUpdate):
			if e, ok := event.(*discordgo.MessageUpdate); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.MessageDelete):
			if e, ok := event.(*discordgo.MessageDelete); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.MessageReactionAdd):
			if e, ok := event.(*discordgo.MessageReactionAdd); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.MessageReactionRemove):
			if e, ok := event.(*discordgo.MessageReactionRemove); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.GuildMemberAdd):
			if e, ok := event.(*discordgo.GuildMemberAdd); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.GuildMemberRemove):
			if e, ok := event.(*discordgo.GuildMemberRemove); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.ChannelCreate):
			if e, ok := event.(*discordgo.ChannelCreate); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.ChannelUpdate):
			if e, ok := event.(*discordgo.ChannelUpdate); ok {
				fn(nil, e)
			}
		case func(*discordgo.Session, *discordgo.GuildAuditLogEntryCreate):
			if e, ok := event.(*discordgo.GuildAuditLogEntryCreate); ok {
				fn(nil, e)
			}
		}
	}
}

type recordingDispatcher struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (d *recordingDispatcher) Dispatch(notification models.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, notification)
}

func (d *recordingDispatcher) all() []models.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Notification{}, d.notifications...)
}

func rawMessageCreate(guildID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        testutils.GenerateMessageID(),
			GuildID:   guildID,
			ChannelID: testutils.GenerateChannelID(),
			Author:    &discordgo.User{ID: testutils.GenerateUserID()},
			Content:   "look at this <:partyparrot:123456789>",
		},
	}
}

func TestMessageBehavior_DispatchesMessageCreate(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewMessageBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	guildID := testutils.GenerateGuildID()
	raw := rawMessageCreate(guildID)
	session.fire(raw)

	notifications := dispatcher.all()
	require.Len(t, notifications, 1)
	received, ok := notifications[0].(models.MessageReceivedNotification)
	require.True(t, ok)
	assert.Equal(t, guildID, received.GuildID())
	assert.Equal(t, raw.ID, received.Message.MessageID)
	assert.Equal(t, []string{"partyparrot"}, received.Message.EmojiNames)

	actorID, hasActor := received.ActorID().Get()
	require.True(t, hasActor)
	assert.Equal(t, raw.Author.ID, actorID)
}

func TestMessageBehavior_DropsIncompletePayloads(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewMessageBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	// DM-style payload without a guild, and one without an author
	session.fire(&discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        testutils.GenerateMessageID(),
		ChannelID: testutils.GenerateChannelID(),
		Author:    &discordgo.User{ID: testutils.GenerateUserID()},
	}})
	session.fire(&discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        testutils.GenerateMessageID(),
		GuildID:   testutils.GenerateGuildID(),
		ChannelID: testutils.GenerateChannelID(),
	}})

	assert.Empty(t, dispatcher.all())
}

func TestMessageBehavior_StopUnsubscribes(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewMessageBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	guildID := testutils.GenerateGuildID()
	session.fire(rawMessageCreate(guildID))
	behavior.Stop()
	session.fire(rawMessageCreate(guildID))

	// Only the event fired between Start and Stop reaches the dispatcher
	assert.Len(t, dispatcher.all(), 1)
}

func TestReactionBehavior_DispatchesAddAndRemove(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewReactionBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	reaction := &discordgo.MessageReaction{
		GuildID:   testutils.GenerateGuildID(),
		ChannelID: testutils.GenerateChannelID(),
		MessageID: testutils.GenerateMessageID(),
		UserID:    testutils.GenerateUserID(),
		Emoji:     discordgo.Emoji{Name: "👍"},
	}
	session.fire(&discordgo.MessageReactionAdd{MessageReaction: reaction})
	session.fire(&discordgo.MessageReactionRemove{MessageReaction: reaction})

	notifications := dispatcher.all()
	require.Len(t, notifications, 2)
	added, ok := notifications[0].(models.ReactionAddedNotification)
	require.True(t, ok)
	assert.Equal(t, "👍", added.Reaction.EmojiName)
	_, ok = notifications[1].(models.ReactionRemovedNotification)
	require.True(t, ok)
}

func TestMemberBehavior_DispatchesJoinAndLeave(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewMemberBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	guildID := testutils.GenerateGuildID()
	userID := testutils.GenerateUserID()
	member := &discordgo.Member{
		GuildID: guildID,
		User:    &discordgo.User{ID: userID, Username: "newcomer"},
		Roles:   []string{testutils.GenerateRoleID()},
	}
	session.fire(&discordgo.GuildMemberAdd{Member: member})
	session.fire(&discordgo.GuildMemberRemove{Member: member})

	notifications := dispatcher.all()
	require.Len(t, notifications, 2)
	joined, ok := notifications[0].(models.UserJoinedNotification)
	require.True(t, ok)
	assert.Equal(t, userID, joined.Member.UserID)
	assert.Equal(t, "newcomer", joined.Member.Username)
	left, ok := notifications[1].(models.UserLeftNotification)
	require.True(t, ok)
	assert.Equal(t, guildID, left.GuildID())
}

func TestChannelBehavior_DispatchesCreateAndUpdate(t *testing.T) {
	session := &fakeGatewaySession{}
	dispatcher := &recordingDispatcher{}
	behavior := NewChannelBehavior(session, dispatcher)
	require.NoError(t, behavior.Start())

	channel := &discordgo.Channel{
		ID:      testutils.GenerateChannelID(),
		GuildID: testutils.GenerateGuildID(),
		Name:    "general",
		Topic:   "anything goes",
		Type:    discordgo.ChannelTypeGuildText,
	}
	session.fire(&discordgo.ChannelCreate{Channel: channel})
	session.fire(&discordgo.ChannelUpdate{Channel: channel})

	notifications := dispatcher.all()
	require.Len(t, notifications, 2)
	created, ok := notifications[0].(models.ChannelCreatedNotification)
	require.True(t, ok)
	assert.Equal(t, "general", created.Channel.Name)
	assert.False(t, created.Channel.IsThread)
	_, ok = notifications[1].(models.ChannelUpdatedNotification)
	require.True(t, ok)
}

func TestAuditLogBehavior_MapsActions(t *testing.T) {
	tests := []struct {
		name       string
		actionType discordgo.AuditLogAction
		wantAction models.AuditLogAction
	}{
		{name: "ban add", actionType: discordgo.AuditLogActionMemberBanAdd, wantAction: models.AuditLogActionBan},
		{name: "ban remove", actionType: discordgo.AuditLogActionMemberBanRemove, wantAction: models.AuditLogActionUnban},
		{name: "kick", actionType: discordgo.AuditLogActionMemberKick, wantAction: models.AuditLogActionKick},
		{name: "unrelated action", actionType: discordgo.AuditLogActionChannelCreate, wantAction: models.AuditLogActionOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeGatewaySession{}
			dispatcher := &recordingDispatcher{}
			behavior := NewAuditLogBehavior(session, dispatcher)
			require.NoError(t, behavior.Start())

			actionType := tt.actionType
			session.fire(&discordgo.GuildAuditLogEntryCreate{
				GuildID: testutils.GenerateGuildID(),
				AuditLogEntry: &discordgo.AuditLogEntry{
					ID:         testutils.GenerateMessageID(),
					UserID:     testutils.GenerateUserID(),
					TargetID:   testutils.GenerateUserID(),
					ActionType: &actionType,
					Reason:     "spamming",
				},
			})

			notifications := dispatcher.all()
			require.Len(t, notifications, 1)
			created, ok := notifications[0].(models.AuditLogCreatedNotification)
			require.True(t, ok)
			assert.Equal(t, tt.wantAction, created.Entry.Action)
			assert.Equal(t, "spamming", created.Entry.Reason)
		})
	}
}

type failingBehavior struct {
	name    string
	started *[]string
	stopped *[]string
	fail    bool
}

func (b *failingBehavior) Name() string { return b.name }

func (b *failingBehavior) Start() error {
	if b.fail {
		return fmt.Errorf("subscription rejected")
	}
	*b.started = append(*b.started, b.name)
	return nil
}

func (b *failingBehavior) Stop() {
	*b.stopped = append(*b.stopped, b.name)
}

func TestRegistry_StartAllRollsBackOnFailure(t *testing.T) {
	started := []string{}
	stopped := []string{}
	registry := NewRegistry(
		&failingBehavior{name: "a", started: &started, stopped: &stopped},
		&failingBehavior{name: "b", started: &started, stopped: &stopped},
		&failingBehavior{name: "c", started: &started, stopped: &stopped, fail: true},
	)

	err := registry.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "c")
	assert.Equal(t, []string{"a", "b"}, started)
	assert.Equal(t, []string{"a", "b"}, stopped)
}

func TestRegistry_StopAllStopsEveryBehavior(t *testing.T) {
	started := []string{}
	stopped := []string{}
	registry := NewRegistry(
		&failingBehavior{name: "a", started: &started, stopped: &stopped},
		&failingBehavior{name: "b", started: &started, stopped: &stopped},
	)

	require.NoError(t, registry.StartAll())
	registry.StopAll()

	assert.Equal(t, []string{"a", "b"}, stopped)
}
