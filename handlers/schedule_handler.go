package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oflinehulk/showyours-core/services"
)

type ScheduleHandler struct {
	scheduleService   services.ScheduleService
	defaultGapMinutes int
}

func NewScheduleHandler(scheduleService services.ScheduleService, defaultGapMinutes int) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, defaultGapMinutes: defaultGapMinutes}
}

type autoScheduleRequest struct {
	GapMinutes *int `json:"gap_minutes,omitempty"`
}

// AutoSchedule runs one scheduling pass over the tournament's pending
// matches. The response lists every placement made plus a reason per match
// the pass could not place.
// POST /tournaments/{tournamentID}/schedule
func (h *ScheduleHandler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(chi.URLParam(r, "tournamentID"))
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "invalid tournament ID")
		return
	}

	gapMinutes := h.defaultGapMinutes
	if r.ContentLength > 0 {
		var input autoScheduleRequest
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		if input.GapMinutes != nil {
			gapMinutes = *input.GapMinutes
		}
	}

	result, err := h.scheduleService.AutoSchedule(r.Context(), tournamentID, gapMinutes)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result, nil)
}
