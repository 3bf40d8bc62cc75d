package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oflinehulk/showyours-core/brackets"
	"github.com/oflinehulk/showyours-core/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

type generateBracketRequest struct {
	Format        string `json:"format"`
	DefaultBestOf int    `json:"default_best_of,omitempty"`
	FinalsBestOf  int    `json:"finals_best_of,omitempty"`
	StageID       *int   `json:"stage_id,omitempty"`
	GroupID       *int   `json:"group_id,omitempty"`
}

// Generate builds and stores the full match skeleton for a tournament.
// POST /tournaments/{tournamentID}/bracket
func (h *BracketHandler) Generate(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	var input generateBracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.GenerateAndSaveBracket(
		r.Context(),
		tournamentID,
		services.BracketFormat(input.Format),
		brackets.Options{
			DefaultBestOf: input.DefaultBestOf,
			FinalsBestOf:  input.FinalsBestOf,
			StageID:       input.StageID,
			GroupID:       input.GroupID,
		},
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil)
}

// Get returns the tournament's matches together with its approved teams.
// GET /tournaments/{tournamentID}/bracket
func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	view, err := h.bracketService.GetTournamentBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view, nil)
}
