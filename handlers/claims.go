package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"modbot/core"
	"modbot/models"
	"modbot/services"
)

// ClaimMappingRequest is the request body for creating a claim mapping
type ClaimMappingRequest struct {
	RoleID string `json:"role_id"`
	Claim  string `json:"claim"`
}

// ClaimsHTTPHandler manages role-to-claim mappings over HTTP.
type ClaimsHTTPHandler struct {
	claimsService services.ClaimsService
}

func NewClaimsHTTPHandler(claimsService services.ClaimsService) *ClaimsHTTPHandler {
	return &ClaimsHTTPHandler{claimsService: claimsService}
}

func (h *ClaimsHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/api/v1/guilds/{guildID}/claims", h.HandleCreateClaimMapping).
		Methods("POST")
	router.HandleFunc("/api/v1/guilds/{guildID}/roles/{roleID}/claims/{claim}", h.HandleDeleteClaimMapping).
		Methods("DELETE")
}

func (h *ClaimsHTTPHandler) HandleCreateClaimMapping(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]
	log.Printf("📋 Create claim mapping request received for guild %s", guildID)

	var req ClaimMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.RoleID == "" {
		log.Printf("❌ Missing role_id in request")
		http.Error(w, "role_id is required", http.StatusBadRequest)
		return
	}

	claim := models.Claim(req.Claim)
	if !claim.IsValid() {
		log.Printf("❌ Unknown claim in request: %s", req.Claim)
		http.Error(w, "unknown claim", http.StatusBadRequest)
		return
	}

	mapping, err := h.claimsService.CreateClaimMapping(r.Context(), guildID, req.RoleID, claim)
	if err != nil {
		log.Printf("❌ Failed to create claim mapping: %v", err)
		http.Error(w, "failed to create claim mapping", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, mapping)
}

func (h *ClaimsHTTPHandler) HandleDeleteClaimMapping(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guildID := vars["guildID"]
	roleID := vars["roleID"]
	claim := models.Claim(vars["claim"])
	log.Printf("📋 Delete claim mapping request received for role %s in guild %s", roleID, guildID)

	err := h.claimsService.DeleteClaimMapping(r.Context(), guildID, roleID, claim)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "claim mapping not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to delete claim mapping: %v", err)
		http.Error(w, "failed to delete claim mapping", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ClaimsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
