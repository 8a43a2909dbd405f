package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"modbot/services"
)

const defaultStatsLimit = 10

// StatsHTTPHandler exposes read-only usage statistics over HTTP.
type StatsHTTPHandler struct {
	tagsService   services.TagsService
	emojisService services.EmojisService
}

func NewStatsHTTPHandler(
	tagsService services.TagsService,
	emojisService services.EmojisService,
) *StatsHTTPHandler {
	return &StatsHTTPHandler{
		tagsService:   tagsService,
		emojisService: emojisService,
	}
}

func (h *StatsHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/api/v1/guilds/{guildID}/stats/tags", h.HandleTopTags).Methods("GET")
	router.HandleFunc("/api/v1/guilds/{guildID}/stats/emojis", h.HandleTopEmojis).Methods("GET")
}

func (h *StatsHTTPHandler) HandleTopTags(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]
	log.Printf("📋 Top tags request received for guild %s", guildID)

	tags, err := h.tagsService.GetTopTagsByUses(r.Context(), guildID, parseLimit(r))
	if err != nil {
		log.Printf("❌ Failed to get top tags: %v", err)
		http.Error(w, "failed to get top tags", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, tags)
}

func (h *StatsHTTPHandler) HandleTopEmojis(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]
	log.Printf("📋 Top emojis request received for guild %s", guildID)

	emojis, err := h.emojisService.GetTopEmojis(r.Context(), guildID, parseLimit(r))
	if err != nil {
		log.Printf("❌ Failed to get top emojis: %v", err)
		http.Error(w, "failed to get top emojis", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, emojis)
}

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultStatsLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return defaultStatsLimit
	}
	return limit
}

func (h *StatsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
