package project

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"Ampere/internal/api"
	"Ampere/internal/auth"
	"Ampere/internal/calc/report"
	"Ampere/internal/logging"
	"Ampere/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createProjectRequest
	if !api.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "name required")
		return
	}
	id, err := h.Repo.CreateProject(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		logging.Logger.Error().Err(err).Msg("create project")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	projects, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		logging.Logger.Error().Err(err).Msg("list projects")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if projects == nil {
		projects = []repo.Project{}
	}
	api.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.DeleteProject(r.Context(), userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		logging.Logger.Error().Err(err).Msg("delete project")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var s repo.Session
	if !api.Decode(w, r, &s) {
		return
	}
	if s.Calculator == "" || !report.Known(s.Calculator) {
		api.WriteError(w, http.StatusBadRequest, "unknown calculator")
		return
	}
	if len(s.Inputs) == 0 || len(s.Results) == 0 {
		api.WriteError(w, http.StatusBadRequest, "inputs and results required")
		return
	}
	if s.UnitSystem == "" {
		s.UnitSystem = "SI"
	}
	id, err := h.Repo.SaveSession(r.Context(), userID, s)
	if err != nil {
		logging.Logger.Error().Err(err).Str("calculator", s.Calculator).Msg("save session")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	sessions, err := h.Repo.ListSessions(r.Context(), userID, r.URL.Query().Get("calculator"))
	if err != nil {
		logging.Logger.Error().Err(err).Msg("list sessions")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if sessions == nil {
		sessions = []repo.Session{}
	}
	api.WriteJSON(w, http.StatusOK, sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	s, err := h.Repo.GetSession(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "session not found")
			return
		}
		logging.Logger.Error().Err(err).Msg("get session")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	api.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.Repo.DeleteSession(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "session not found")
			return
		}
		logging.Logger.Error().Err(err).Msg("delete session")
		api.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportAuditor records PDF exports, attributing them to the user when the
// request carried a valid session token.
type ExportAuditor struct {
	Repo repo.Repository
}

func (a *ExportAuditor) LogExport(r *http.Request, calculator string) {
	var userID sql.NullInt64
	if id, ok := auth.UserID(r.Context()); ok {
		userID = sql.NullInt64{Int64: int64(id), Valid: true}
	}
	if err := a.Repo.LogExport(r.Context(), userID, calculator); err != nil {
		logging.Logger.Error().Err(err).Str("calculator", calculator).Msg("log export")
	}
}
