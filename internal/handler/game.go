package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/service"
)

type GameHandler struct {
	gameService *service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{gameID}", h.GetByID)
	r.Get("/by_user/{userID}", h.GetByUser)
	r.Delete("/{gameID}", h.Delete)
	r.Post("/{gameID}/join/{userID}", h.Join)
	r.Post("/{gameID}/leave/{userID}", h.Leave)
	r.Post("/{gameID}/start", h.Start)
	r.Post("/{gameID}/rehost", h.Rehost)
	r.Post("/{gameID}/url", h.SetURL)

	return r
}

type createGameRequest struct {
	HostID       uuid.UUID `json:"host_id"`
	PlayerAmount int       `json:"player_amount"`
}

// POST /v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.HostID == uuid.Nil {
		writeError(w, apperrors.MissingRequired("host_id"))
		return
	}

	game, err := h.gameService.Host(r.Context(), req.HostID, req.PlayerAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusCreated, game)
}

// GET /v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination := ParsePagination(r)

	games, err := h.gameService.List(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	results := make([]map[string]any, 0, len(games))
	for _, game := range games {
		results = append(results, formatGame(game, h.inviteURL(game)))
	}

	writeJSON(w, http.StatusOK, paginated(results, pagination))
}

// GET /v1/games/{gameID}
func (h *GameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.gameService.Get(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusOK, game)
}

// GET /v1/games/by_user/{userID}
func (h *GameHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	game, err := h.gameService.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusOK, game)
}

// DELETE /v1/games/{gameID}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	if err := h.gameService.Unhost(r.Context(), gameID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/games/{gameID}/join/{userID}
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	game, err := h.gameService.Join(r.Context(), gameID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusCreated, game)
}

// POST /v1/games/{gameID}/leave/{userID}
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	game, err := h.gameService.Leave(r.Context(), gameID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusOK, game)
}

// POST /v1/games/{gameID}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.gameService.Start(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusAccepted, game)
}

// POST /v1/games/{gameID}/rehost
func (h *GameHandler) Rehost(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.gameService.Rehost(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusCreated, game)
}

type setGameURLRequest struct {
	URL string `json:"url"`
}

// POST /v1/games/{gameID}/url
func (h *GameHandler) SetURL(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseUUIDParam(w, r, "gameID")
	if !ok {
		return
	}

	var req setGameURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, apperrors.MissingRequired("url"))
		return
	}

	game, err := h.gameService.AttachInvite(r.Context(), gameID, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeGame(w, http.StatusAccepted, game)
}

func (h *GameHandler) writeGame(w http.ResponseWriter, status int, game *model.Game) {
	writeJSON(w, status, formatGame(game, h.inviteURL(game)))
}

func (h *GameHandler) inviteURL(game *model.Game) string {
	url, err := h.gameService.InviteURL(game)
	if err != nil {
		log.Error().Err(err).Str("gameId", game.GameID.String()).Msg("failed to sign invite url")
		return ""
	}
	return url
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, apperrors.InvalidInput(name, "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
