package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"modbot/models"
	emojissvc "modbot/services/emojis"
	tagssvc "modbot/services/tags"
	"modbot/testutils"
)

type statsFixture struct {
	tagsService   *tagssvc.MockTagsService
	emojisService *emojissvc.MockEmojisService
	router        *mux.Router
}

func newStatsFixture() *statsFixture {
	mockTags := new(tagssvc.MockTagsService)
	mockEmojis := new(emojissvc.MockEmojisService)
	router := mux.NewRouter()
	NewStatsHTTPHandler(mockTags, mockEmojis).SetupEndpoints(router)
	return &statsFixture{
		tagsService:   mockTags,
		emojisService: mockEmojis,
		router:        router,
	}
}

func TestStatsHTTPHandler_TopTags(t *testing.T) {
	fixture := newStatsFixture()
	guildID := testutils.GenerateGuildID()

	fixture.tagsService.On("GetTopTagsByUses", mock.Anything, guildID, 10).
		Return([]*models.TagUsageStat{
			{Name: "faq", UsesCount: 12},
			{Name: "rules", UsesCount: 7},
		}, nil)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/guilds/%s/stats/tags", guildID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var stats []*models.TagUsageStat
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "faq", stats[0].Name)
	fixture.tagsService.AssertExpectations(t)
}

func TestStatsHTTPHandler_TopEmojisWithLimit(t *testing.T) {
	fixture := newStatsFixture()
	guildID := testutils.GenerateGuildID()

	fixture.emojisService.On("GetTopEmojis", mock.Anything, guildID, 5).
		Return([]*models.EmojiStat{{EmojiName: "partyparrot", UsesCount: 42}}, nil)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/guilds/%s/stats/emojis?limit=5", guildID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	fixture.emojisService.AssertExpectations(t)
}

func TestStatsHTTPHandler_InvalidLimitFallsBackToDefault(t *testing.T) {
	fixture := newStatsFixture()
	guildID := testutils.GenerateGuildID()

	fixture.emojisService.On("GetTopEmojis", mock.Anything, guildID, 10).
		Return([]*models.EmojiStat{}, nil)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/guilds/%s/stats/emojis?limit=banana", guildID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	fixture.emojisService.AssertExpectations(t)
}

func TestStatsHTTPHandler_ServiceFailureReturns500(t *testing.T) {
	fixture := newStatsFixture()
	guildID := testutils.GenerateGuildID()

	fixture.tagsService.On("GetTopTagsByUses", mock.Anything, guildID, 10).
		Return(nil, fmt.Errorf("db unavailable"))

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/guilds/%s/stats/tags", guildID), nil)
	rr := httptest.NewRecorder()
	fixture.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
