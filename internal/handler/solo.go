package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
	"github.com/SpotTheSpy/backend/internal/service"
)

type SoloGameHandler struct {
	soloService *service.SoloService
}

func NewSoloGameHandler(soloService *service.SoloService) *SoloGameHandler {
	return &SoloGameHandler{soloService: soloService}
}

func (h *SoloGameHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{gameID}", h.GetByID)
	r.Get("/by_user/{userID}", h.GetByUser)
	r.Delete("/{gameID}", h.Delete)
	r.Post("/{gameID}/rehost", h.Rehost)

	return r
}

type createSoloGameRequest struct {
	UserID       uuid.UUID `json:"user_id"`
	PlayerAmount int       `json:"player_amount"`
}

// POST /v1/solo_games
func (h *SoloGameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSoloGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.UserID == uuid.Nil {
		writeError(w, apperrors.MissingRequired("user_id"))
		return
	}

	game, err := h.soloService.Host(r.Context(), req.UserID, req.PlayerAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, formatSoloGame(game))
}

// GET /v1/solo_games
func (h *SoloGameHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination := ParsePagination(r)

	games, err := h.soloService.List(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]map[string]any, 0, len(games))
	for _, game := range games {
		results = append(results, formatSoloGame(game))
	}

	writeJSON(w, http.StatusOK, paginated(results, pagination))
}

// GET /v1/solo_games/{gameID}
func (h *SoloGameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.soloService.Get(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formatSoloGame(game))
}

// GET /v1/solo_games/by_user/{userID}
func (h *SoloGameHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	game, err := h.soloService.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formatSoloGame(game))
}

// DELETE /v1/solo_games/{gameID}
func (h *SoloGameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	if err := h.soloService.Unhost(r.Context(), gameID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/solo_games/{gameID}/rehost
func (h *SoloGameHandler) Rehost(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.soloService.Rehost(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, formatSoloGame(game))
}
