package boardmeta

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/drostelab/droste/internal/auth"
	"github.com/drostelab/droste/internal/board"
	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/render"
	"github.com/drostelab/droste/internal/scene"
)

type Handler struct {
	service    *Service
	hub        *board.Hub
	renderOpts render.Options
}

func NewHandler(service *Service, hub *board.Hub, renderOpts render.Options) *Handler {
	return &Handler{service: service, hub: hub, renderOpts: renderOpts}
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	b, err := h.service.Create(r.Context(), req.Name, userID)
	if err != nil {
		slog.Error("create board failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	boardID := mux.Vars(r)["boardId"]

	b, err := h.service.Get(r.Context(), boardID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	boards, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list boards failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, boards)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	boardID := mux.Vars(r)["boardId"]

	err := h.service.Delete(r.Context(), boardID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Render dumps the draw-command buffer for a live board — the same buffer
// session clients receive in frame updates. Meant for debugging frontends.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	room, ok := h.hub.Room(boardID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "board is not live"})
		return
	}

	opts := h.renderOpts
	if d := r.URL.Query().Get("depth"); d != "" {
		if depth, err := strconv.Atoi(d); err == nil && depth > 0 {
			opts.MaxDepth = depth
		}
	}

	commands := render.Compile(room.Snapshot(), opts)
	writeJSON(w, http.StatusOK, commands)
}

type hitTestResponse struct {
	Hit  bool               `json:"hit"`
	Path *scene.ClickedPath `json:"path,omitempty"`
}

// HitTest resolves a viewport point against a live board's committed scene.
func (h *Handler) HitTest(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	room, ok := h.hub.Room(boardID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "board is not live"})
		return
	}

	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y query parameters are required"})
		return
	}

	path, hit := scene.HitTest(room.Snapshot(), geom.Point{X: x, Y: y})
	resp := hitTestResponse{Hit: hit}
	if hit {
		resp.Path = &path
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
