package channeltracking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/auth"
	"modbot/dispatch"
	"modbot/models"
	guildchannelssvc "modbot/services/guildchannels"
	"modbot/testutils"
)

func channelScope(guildID string) *dispatch.Scope {
	return dispatch.NewTestScope(context.Background(), auth.EmptyContext(guildID))
}

func TestChannelTrackingHandler_UpsertsOnCreateAndUpdate(t *testing.T) {
	mockChannels := new(guildchannelssvc.MockGuildChannelsService)
	handler := NewChannelTrackingHandler(mockChannels)
	guildID := testutils.GenerateGuildID()
	channel := models.Channel{
		GuildID:   guildID,
		ChannelID: testutils.GenerateChannelID(),
		Name:      "general",
		Topic:     "talk about anything",
	}

	mockChannels.On("UpsertChannel", mock.Anything, channel).
		Return(&models.GuildChannel{ID: "gc_1", ChannelID: channel.ChannelID}, nil).Twice()

	created, err := models.NewChannelCreatedNotification(channel)
	require.NoError(t, err)
	updated, err := models.NewChannelUpdatedNotification(channel)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), channelScope(guildID), created))
	require.NoError(t, handler.Handle(context.Background(), channelScope(guildID), updated))
	mockChannels.AssertExpectations(t)
}

func TestChannelTrackingHandler_SkipsThreads(t *testing.T) {
	mockChannels := new(guildchannelssvc.MockGuildChannelsService)
	handler := NewChannelTrackingHandler(mockChannels)
	guildID := testutils.GenerateGuildID()
	thread := models.Channel{
		GuildID:   guildID,
		ChannelID: testutils.GenerateChannelID(),
		Name:      "ephemeral thread",
		IsThread:  true,
	}

	notification, err := models.NewChannelCreatedNotification(thread)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), channelScope(guildID), notification))
	mockChannels.AssertNotCalled(t, "UpsertChannel", mock.Anything, mock.Anything)
}
