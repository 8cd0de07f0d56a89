package model

import "github.com/google/uuid"

// Player is a user's membership record within one game. Display attributes
// are captured at join time and never re-fetched.
type Player struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	ExternalID int64     `json:"external_id"`
	Role       Role      `json:"role,omitempty"`
}

func NewPlayer(userID uuid.UUID, externalID int64, firstName string) Player {
	return Player{
		UserID:     userID,
		ExternalID: externalID,
		FirstName:  firstName,
	}
}

// PlayerFromRecord fails soft: a malformed record yields ok=false.
func PlayerFromRecord(rec Record) (Player, bool) {
	rawID, ok := recordString(rec, "user_id")
	if !ok {
		return Player{}, false
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Player{}, false
	}

	firstName, ok := recordString(rec, "first_name")
	if !ok {
		return Player{}, false
	}
	externalID, ok := recordInt(rec, "external_id")
	if !ok {
		return Player{}, false
	}

	role, _ := recordString(rec, "role")

	return Player{
		UserID:     userID,
		FirstName:  firstName,
		ExternalID: int64(externalID),
		Role:       Role(role),
	}, true
}

func (p Player) ToRecord() Record {
	rec := Record{
		"user_id":     p.UserID.String(),
		"first_name":  p.FirstName,
		"external_id": p.ExternalID,
	}
	if p.Role != RoleNone {
		rec["role"] = string(p.Role)
	}
	return rec
}
