package model

import "github.com/google/uuid"

// SoloGame is the single-device variant: one real user passes the device
// around, players are positional, and only the spy's seat index is stored.
type SoloGame struct {
	GameID       uuid.UUID `json:"game_id"`
	UserID       uuid.UUID `json:"user_id"`
	PlayerAmount int       `json:"player_amount"`
	SecretWord   string    `json:"secret_word"`
	SpyIndex     int       `json:"spy_index"`
}

func (*SoloGame) StorageKey() string {
	return "solo_game"
}

func (g *SoloGame) PrimaryKey() string {
	return g.GameID.String()
}

func NewSoloGame(userID uuid.UUID, playerAmount int, secretWord string, spyIndex int) *SoloGame {
	return &SoloGame{
		GameID:       uuid.New(),
		UserID:       userID,
		PlayerAmount: playerAmount,
		SecretWord:   secretWord,
		SpyIndex:     spyIndex,
	}
}

func SoloGameFromRecord(rec Record) (*SoloGame, bool) {
	rawGameID, ok := recordString(rec, "game_id")
	if !ok {
		return nil, false
	}
	gameID, err := uuid.Parse(rawGameID)
	if err != nil {
		return nil, false
	}

	rawUserID, ok := recordString(rec, "user_id")
	if !ok {
		return nil, false
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, false
	}

	playerAmount, ok := recordInt(rec, "player_amount")
	if !ok || playerAmount < 1 {
		return nil, false
	}
	secretWord, ok := recordString(rec, "secret_word")
	if !ok {
		return nil, false
	}
	spyIndex, ok := recordInt(rec, "spy_index")
	if !ok || spyIndex < 0 || spyIndex >= playerAmount {
		return nil, false
	}

	return &SoloGame{
		GameID:       gameID,
		UserID:       userID,
		PlayerAmount: playerAmount,
		SecretWord:   secretWord,
		SpyIndex:     spyIndex,
	}, true
}

func (g *SoloGame) ToRecord() Record {
	return Record{
		"game_id":       g.GameID.String(),
		"user_id":       g.UserID.String(),
		"player_amount": g.PlayerAmount,
		"secret_word":   g.SecretWord,
		"spy_index":     g.SpyIndex,
	}
}
