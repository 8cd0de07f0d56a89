package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a row in the relational user directory. Looked up once at
// host/join time to validate the caller and capture display attributes.
type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	ExternalID int64      `db:"external_id" json:"external_id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	Username   *string    `db:"username" json:"username,omitempty"`
	Locale     *string    `db:"locale" json:"locale,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type CreateUserParams struct {
	ExternalID int64
	FirstName  string
	Username   *string
	Locale     *string
}
