package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/core"
	"modbot/models"
	claimssvc "modbot/services/claims"
	"modbot/testutils"
)

type claimsFixture struct {
	claimsService *claimssvc.MockClaimsService
	router        *mux.Router
}

func newClaimsFixture() *claimsFixture {
	mockClaims := new(claimssvc.MockClaimsService)
	router := mux.NewRouter()
	NewClaimsHTTPHandler(mockClaims).SetupEndpoints(router)
	return &claimsFixture{
		claimsService: mockClaims,
		router:        router,
	}
}

func TestClaimsHTTPHandler_CreateClaimMapping(t *testing.T) {
	fixture := newClaimsFixture()
	guildID := testutils.GenerateGuildID()
	roleID := testutils.GenerateRoleID()

	fixture.claimsService.On("CreateClaimMapping",
		mock.Anything, guildID, roleID, models.ClaimTagsManage).
		Return(&models.ClaimMapping{
			ID:      "cm_1",
			GuildID: guildID,
			RoleID:  roleID,
			Claim:   models.ClaimTagsManage,
		}, nil)

	body := fmt.Sprintf(`{"role_id":"%s","claim":"tags.manage"}`, roleID)
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/guilds/%s/claims", guildID), strings.NewReader(body))
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var mapping models.ClaimMapping
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mapping))
	assert.Equal(t, models.ClaimTagsManage, mapping.Claim)
	fixture.claimsService.AssertExpectations(t)
}

func TestClaimsHTTPHandler_CreateRejectsBadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "malformed json",
			body: `{"role_id":`,
		},
		{
			name: "missing role_id",
			body: `{"claim":"tags.manage"}`,
		},
		{
			name: "unknown claim",
			body: `{"role_id":"123","claim":"tags.selfdestruct"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := newClaimsFixture()
			guildID := testutils.GenerateGuildID()

			req := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/api/v1/guilds/%s/claims", guildID), strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			fixture.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			fixture.claimsService.AssertNotCalled(t, "CreateClaimMapping",
				mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestClaimsHTTPHandler_DeleteClaimMapping(t *testing.T) {
	fixture := newClaimsFixture()
	guildID := testutils.GenerateGuildID()
	roleID := testutils.GenerateRoleID()

	fixture.claimsService.On("DeleteClaimMapping",
		mock.Anything, guildID, roleID, models.ClaimModerationWarn).
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/guilds/%s/roles/%s/claims/moderation.warn", guildID, roleID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	fixture.claimsService.AssertExpectations(t)
}

func TestClaimsHTTPHandler_DeleteMissingMappingReturns404(t *testing.T) {
	fixture := newClaimsFixture()
	guildID := testutils.GenerateGuildID()
	roleID := testutils.GenerateRoleID()

	fixture.claimsService.On("DeleteClaimMapping",
		mock.Anything, guildID, roleID, models.ClaimModerationWarn).
		Return(core.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/guilds/%s/roles/%s/claims/moderation.warn", guildID, roleID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClaimsHTTPHandler_DeleteFailureReturns500(t *testing.T) {
	fixture := newClaimsFixture()
	guildID := testutils.GenerateGuildID()
	roleID := testutils.GenerateRoleID()

	fixture.claimsService.On("DeleteClaimMapping",
		mock.Anything, guildID, roleID, models.ClaimModerationBan).
		Return(fmt.Errorf("db unavailable"))

	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/v1/guilds/%s/roles/%s/claims/moderation.ban", guildID, roleID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
