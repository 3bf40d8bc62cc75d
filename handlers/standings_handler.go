package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oflinehulk/showyours-core/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// Get recomputes and returns one group's table.
// GET /groups/{groupID}/standings?advance=2&to_lower=1
func (h *StandingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid group ID")
		return
	}

	advance := queryInt(r, "advance", 0)
	toLower := queryInt(r, "to_lower", 0)

	table, err := h.standingsService.GetGroupStandings(r.Context(), groupID, advance, toLower)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, table, nil)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
