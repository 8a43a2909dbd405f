package tags

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/auth"
	"modbot/dispatch"
	"modbot/models"
	tagssvc "modbot/services/tags"
	"modbot/testutils"
)

func tagScope(guildID string) *dispatch.Scope {
	return dispatch.NewTestScope(context.Background(), auth.EmptyContext(guildID))
}

func tagMessage(t *testing.T, guildID, content string) models.MessageReceivedNotification {
	t.Helper()
	message := testutils.NewTestMessage(guildID)
	message.Content = content
	notification, err := models.NewMessageReceivedNotification(message)
	require.NoError(t, err)
	return notification
}

func TestTagUsageHandler_RecordsInvocation(t *testing.T) {
	mockTags := new(tagssvc.MockTagsService)
	handler := NewTagUsageHandler(mockTags)
	guildID := testutils.GenerateGuildID()

	mockTags.On("RecordTagUse", mock.Anything, guildID, "faq").Return(true, nil)

	err := handler.Handle(context.Background(), tagScope(guildID), tagMessage(t, guildID, "!faq please"))

	require.NoError(t, err)
	mockTags.AssertExpectations(t)
}

func TestTagUsageHandler_UnknownTagIsNotAnError(t *testing.T) {
	mockTags := new(tagssvc.MockTagsService)
	handler := NewTagUsageHandler(mockTags)
	guildID := testutils.GenerateGuildID()

	mockTags.On("RecordTagUse", mock.Anything, guildID, "nosuchtag").Return(false, nil)

	err := handler.Handle(context.Background(), tagScope(guildID), tagMessage(t, guildID, "!nosuchtag"))

	require.NoError(t, err)
}

func TestTagUsageHandler_IgnoresNonInvocations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		isBot   bool
	}{
		{name: "plain message", content: "just chatting"},
		{name: "bang mid-message", content: "wow !faq"},
		{name: "bare bang", content: "!"},
		{name: "bot invocation", content: "!faq", isBot: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTags := new(tagssvc.MockTagsService)
			handler := NewTagUsageHandler(mockTags)
			guildID := testutils.GenerateGuildID()

			message := testutils.NewTestMessage(guildID)
			message.Content = tt.content
			message.IsBot = tt.isBot
			notification, err := models.NewMessageReceivedNotification(message)
			require.NoError(t, err)

			require.NoError(t, handler.Handle(context.Background(), tagScope(guildID), notification))
			mockTags.AssertNotCalled(t, "RecordTagUse", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTagUsageHandler_StorageFailurePropagates(t *testing.T) {
	mockTags := new(tagssvc.MockTagsService)
	handler := NewTagUsageHandler(mockTags)
	guildID := testutils.GenerateGuildID()

	mockTags.On("RecordTagUse", mock.Anything, guildID, "faq").
		Return(false, fmt.Errorf("db down"))

	err := handler.Handle(context.Background(), tagScope(guildID), tagMessage(t, guildID, "!faq"))

	require.Error(t, err)
}
