package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oflinehulk/showyours-core/seeding"
	"github.com/oflinehulk/showyours-core/services"
)

type SeedingHandler struct {
	seedingService services.SeedingService
}

func NewSeedingHandler(seedingService services.SeedingService) *SeedingHandler {
	return &SeedingHandler{seedingService: seedingService}
}

type assignGroupsRequest struct {
	StageID    int    `json:"stage_id"`
	GroupCount int    `json:"group_count"`
	Mode       string `json:"mode"`
}

// AssignGroups partitions approved teams into groups.
// POST /tournaments/{tournamentID}/groups
func (h *SeedingHandler) AssignGroups(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	var input assignGroupsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Mode == "" {
		input.Mode = string(seeding.ModeBalanced)
	}

	result, err := h.seedingService.AssignGroups(r.Context(), tournamentID, input.StageID, input.GroupCount, seeding.Mode(input.Mode))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result, nil)
}

type potDrawRequest struct {
	StageID    int `json:"stage_id"`
	GroupCount int `json:"group_count"`
	// Pots maps team id to pot number. Teams left out fall into the
	// overflow pot.
	Pots map[string]int `json:"pots"`
}

// DrawByPots runs a pot-constrained group draw.
// POST /tournaments/{tournamentID}/groups/pots
func (h *SeedingHandler) DrawByPots(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	var input potDrawRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// JSON object keys arrive as strings.
	potByTeam := make(map[int]int, len(input.Pots))
	for rawID, pot := range input.Pots {
		teamID, convErr := strconv.Atoi(rawID)
		if convErr != nil {
			errorResponse(w, r, http.StatusBadRequest, "pots keys must be team IDs")
			return
		}
		potByTeam[teamID] = pot
	}

	result, err := h.seedingService.AssignGroupsByPots(r.Context(), tournamentID, input.StageID, input.GroupCount, potByTeam)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result, nil)
}

type coinFlipRequest struct {
	TeamAID int `json:"team_a_id"`
	TeamBID int `json:"team_b_id"`
}

// CoinFlip decides an order-of-play dispute and records the outcome.
// POST /tournaments/{tournamentID}/coinflip
func (h *SeedingHandler) CoinFlip(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	var input coinFlipRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamAID == input.TeamBID {
		errorResponse(w, r, http.StatusBadRequest, "a coin flip needs two distinct teams")
		return
	}

	flip, err := h.seedingService.CoinFlip(r.Context(), tournamentID, input.TeamAID, input.TeamBID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flip, nil)
}

// ListDraws exposes the audit trail of every recorded random draw.
// GET /tournaments/{tournamentID}/draws
func (h *SeedingHandler) ListDraws(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	records, err := h.seedingService.ListDraws(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"draws": records}, nil)
}
