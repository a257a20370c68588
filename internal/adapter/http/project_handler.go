package http

import (
	"encoding/json"
	"net/http"

	"bluerhyno/internal/usecase/quoting"
)

type ProjectHandler struct {
	svc *quoting.Service
}

func NewProjectHandler(svc *quoting.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type updateProjectRequest struct {
	ProjectStartDate string `json:"projectStartDate"`
	ProjectEndDate   string `json:"projectEndDate"`
	Status           string `json:"status"`
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, wrapValidation(err))
		return
	}

	err = h.svc.UpdateProject(r.Context(), quoting.UpdateProjectInput{
		ProjectID:        id,
		ProjectStartDate: req.ProjectStartDate,
		ProjectEndDate:   req.ProjectEndDate,
		Status:           req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Project updated"})
}
