package model

import "github.com/google/uuid"

// ActivePlayer is the reverse index entry mapping a user to the game they
// currently occupy. Its existence is the definition of "in a game", so a
// user has at most one entry per variant.
type ActivePlayer struct {
	UserID uuid.UUID `json:"user_id"`
	GameID uuid.UUID `json:"game_id"`
}

func (*ActivePlayer) StorageKey() string {
	return "active_player"
}

func (p *ActivePlayer) PrimaryKey() string {
	return p.UserID.String()
}

func NewActivePlayer(userID, gameID uuid.UUID) *ActivePlayer {
	return &ActivePlayer{UserID: userID, GameID: gameID}
}

func ActivePlayerFromRecord(rec Record) (*ActivePlayer, bool) {
	rawUserID, ok := recordString(rec, "user_id")
	if !ok {
		return nil, false
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, false
	}

	rawGameID, ok := recordString(rec, "game_id")
	if !ok {
		return nil, false
	}
	gameID, err := uuid.Parse(rawGameID)
	if err != nil {
		return nil, false
	}

	return &ActivePlayer{UserID: userID, GameID: gameID}, true
}

func (p *ActivePlayer) ToRecord() Record {
	return Record{
		"user_id": p.UserID.String(),
		"game_id": p.GameID.String(),
	}
}

// SoloActivePlayer is the single-device variant of the index. Same shape,
// separate key namespace, so hosting a solo game and a multi-device game
// are tracked independently.
type SoloActivePlayer struct {
	ActivePlayer
}

func (*SoloActivePlayer) StorageKey() string {
	return "solo_active_player"
}

func NewSoloActivePlayer(userID, gameID uuid.UUID) *SoloActivePlayer {
	return &SoloActivePlayer{ActivePlayer{UserID: userID, GameID: gameID}}
}

func SoloActivePlayerFromRecord(rec Record) (*SoloActivePlayer, bool) {
	entry, ok := ActivePlayerFromRecord(rec)
	if !ok {
		return nil, false
	}
	return &SoloActivePlayer{*entry}, true
}
