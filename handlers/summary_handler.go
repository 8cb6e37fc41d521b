package handlers

import (
	"net/http"
	"time"

	"github.com/sump-exe/Sports-Game-Management/services"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) SeasonSummary(w http.ResponseWriter, r *http.Request) {
	year, err := getYearFromQuery(r, time.Now().Year())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.summaryService.SeasonSummary(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
