package memberships

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/auth"
	"modbot/dispatch"
	"modbot/models"
	guilduserssvc "modbot/services/guildusers"
	"modbot/testutils"
)

func membershipScope(guildID string) *dispatch.Scope {
	return dispatch.NewTestScope(context.Background(), auth.EmptyContext(guildID))
}

func TestMembershipHandler_RecordsJoin(t *testing.T) {
	mockGuildUsers := new(guilduserssvc.MockGuildUsersService)
	handler := NewMembershipHandler(mockGuildUsers)
	guildID := testutils.GenerateGuildID()
	member := testutils.NewTestMember(guildID)

	mockGuildUsers.On("RecordJoin", mock.Anything, guildID, member.UserID, member.Username).
		Return(&models.GuildUser{ID: "gu_1", UserID: member.UserID}, nil)

	notification, err := models.NewUserJoinedNotification(member)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), membershipScope(guildID), notification))
	mockGuildUsers.AssertExpectations(t)
}

func TestMembershipHandler_RecordsLeave(t *testing.T) {
	mockGuildUsers := new(guilduserssvc.MockGuildUsersService)
	handler := NewMembershipHandler(mockGuildUsers)
	guildID := testutils.GenerateGuildID()
	member := testutils.NewTestMember(guildID)

	mockGuildUsers.On("RecordLeave", mock.Anything, guildID, member.UserID).Return(nil)

	notification, err := models.NewUserLeftNotification(member)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), membershipScope(guildID), notification))
	mockGuildUsers.AssertExpectations(t)
}

func TestMembershipHandler_StorageFailurePropagates(t *testing.T) {
	mockGuildUsers := new(guilduserssvc.MockGuildUsersService)
	handler := NewMembershipHandler(mockGuildUsers)
	guildID := testutils.GenerateGuildID()
	member := testutils.NewTestMember(guildID)

	mockGuildUsers.On("RecordJoin", mock.Anything, guildID, member.UserID, member.Username).
		Return(nil, fmt.Errorf("db down"))

	notification, err := models.NewUserJoinedNotification(member)
	require.NoError(t, err)

	require.Error(t, handler.Handle(context.Background(), membershipScope(guildID), notification))
}
