package model

import "github.com/google/uuid"

// Game is one multi-device game session. Players are kept in join order and
// unique per user id. Version backs the store's optimistic concurrency
// check and is bumped on every persisted update.
type Game struct {
	GameID      uuid.UUID `json:"game_id"`
	HostID      uuid.UUID `json:"host_id"`
	Capacity    int       `json:"player_amount"`
	SecretWord  string    `json:"secret_word"`
	HasStarted  bool      `json:"has_started"`
	InviteAsset string    `json:"invite_asset,omitempty"`
	Version     int64     `json:"version"`
	Players     []Player  `json:"players"`
}

func (*Game) StorageKey() string {
	return "game"
}

func (g *Game) PrimaryKey() string {
	return g.GameID.String()
}

func NewGame(hostID uuid.UUID, capacity int, secretWord string, host Player) *Game {
	return &Game{
		GameID:     uuid.New(),
		HostID:     hostID,
		Capacity:   capacity,
		SecretWord: secretWord,
		Players:    []Player{host},
	}
}

// GameFromRecord fails soft: a malformed record yields nil, false.
// Malformed entries inside the players array are skipped rather than
// failing the whole game.
func GameFromRecord(rec Record) (*Game, bool) {
	rawGameID, ok := recordString(rec, "game_id")
	if !ok {
		return nil, false
	}
	gameID, err := uuid.Parse(rawGameID)
	if err != nil {
		return nil, false
	}

	rawHostID, ok := recordString(rec, "host_id")
	if !ok {
		return nil, false
	}
	hostID, err := uuid.Parse(rawHostID)
	if err != nil {
		return nil, false
	}

	capacity, ok := recordInt(rec, "player_amount")
	if !ok || capacity < 1 {
		return nil, false
	}
	secretWord, ok := recordString(rec, "secret_word")
	if !ok {
		return nil, false
	}

	hasStarted, _ := recordBool(rec, "has_started")
	inviteAsset, _ := recordString(rec, "invite_asset")
	version, _ := recordInt(rec, "version")

	game := &Game{
		GameID:      gameID,
		HostID:      hostID,
		Capacity:    capacity,
		SecretWord:  secretWord,
		HasStarted:  hasStarted,
		InviteAsset: inviteAsset,
		Version:     int64(version),
	}

	if rawPlayers, ok := rec["players"].([]any); ok {
		for _, raw := range rawPlayers {
			playerRec, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			player, ok := PlayerFromRecord(Record(playerRec))
			if !ok {
				continue
			}
			game.Players = append(game.Players, player)
		}
	}

	return game, true
}

func (g *Game) ToRecord() Record {
	players := make([]any, 0, len(g.Players))
	for _, player := range g.Players {
		players = append(players, map[string]any(player.ToRecord()))
	}

	rec := Record{
		"game_id":       g.GameID.String(),
		"host_id":       g.HostID.String(),
		"player_amount": g.Capacity,
		"secret_word":   g.SecretWord,
		"has_started":   g.HasStarted,
		"version":       g.Version,
		"players":       players,
	}
	if g.InviteAsset != "" {
		rec["invite_asset"] = g.InviteAsset
	}
	return rec
}

func (g *Game) HasPlayer(userID uuid.UUID) bool {
	for _, player := range g.Players {
		if player.UserID == userID {
			return true
		}
	}
	return false
}

func (g *Game) AddPlayer(player Player) {
	g.Players = append(g.Players, player)
}

func (g *Game) RemovePlayer(userID uuid.UUID) bool {
	for i, player := range g.Players {
		if player.UserID == userID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Game) PlayerCount() int {
	return len(g.Players)
}

// IsHost reports whether userID created the game. Kept as a pure function
// over both arguments instead of a back-pointer from Player to Game.
func IsHost(game *Game, userID uuid.UUID) bool {
	return game != nil && game.HostID == userID
}
