package http

import (
	"encoding/json"
	"net/http"

	"bluerhyno/internal/usecase/quoting"
)

type JobStatusHandler struct {
	svc *quoting.Service
}

func NewJobStatusHandler(svc *quoting.Service) *JobStatusHandler {
	return &JobStatusHandler{svc: svc}
}

type jobStatusRequest struct {
	ReferenceNumber string `json:"referenceNumber"`
	Email           string `json:"email"`
}

// Lookup serves the customer-facing status check: a reference number plus
// the matching email, nothing else, so one customer cannot walk another's
// quote.
func (h *JobStatusHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req jobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, wrapValidation(err))
		return
	}

	view, err := h.svc.LookupJobStatus(r.Context(), req.ReferenceNumber, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": view})
}
