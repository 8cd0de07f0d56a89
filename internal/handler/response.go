package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/SpotTheSpy/backend/internal/httputil"
	"github.com/SpotTheSpy/backend/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// Page size bounds for the game, solo-game and user listings.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads ?limit and ?offset for the listing endpoints.
// Missing, malformed or out-of-range values fall back instead of erroring;
// the listings are browse surfaces, not strict queries.
func ParsePagination(r *http.Request) PaginationParams {
	return PaginationParams{
		Limit:  queryInt(r, "limit", DefaultLimit, 1, MaxLimit),
		Offset: queryInt(r, "offset", 0, 0, math.MaxInt),
	}
}

func queryInt(r *http.Request, name string, fallback, min, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < min || n > max {
		return fallback
	}
	return n
}

// PaginatedResult wraps a results page with the parameters that produced it.
type PaginatedResult struct {
	Results any            `json:"results"`
	Meta    PaginationMeta `json:"meta"`
}

type PaginationMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func paginated(results any, p PaginationParams) PaginatedResult {
	return PaginatedResult{
		Results: results,
		Meta:    PaginationMeta{Limit: p.Limit, Offset: p.Offset},
	}
}

func formatPlayer(player model.Player) map[string]any {
	out := map[string]any{
		"user_id":     player.UserID,
		"first_name":  player.FirstName,
		"external_id": player.ExternalID,
	}
	if player.Role != model.RoleNone {
		out["role"] = player.Role
	}
	return out
}

func formatGame(game *model.Game, inviteURL string) map[string]any {
	players := make([]map[string]any, 0, len(game.Players))
	for _, player := range game.Players {
		players = append(players, formatPlayer(player))
	}

	out := map[string]any{
		"game_id":       game.GameID,
		"host_id":       game.HostID,
		"player_amount": game.Capacity,
		"secret_word":   game.SecretWord,
		"has_started":   game.HasStarted,
		"players":       players,
	}
	if inviteURL != "" {
		out["qr_code_url"] = inviteURL
	}
	return out
}

func formatSoloGame(game *model.SoloGame) map[string]any {
	return map[string]any{
		"game_id":       game.GameID,
		"user_id":       game.UserID,
		"player_amount": game.PlayerAmount,
		"secret_word":   game.SecretWord,
		"spy_index":     game.SpyIndex,
	}
}
