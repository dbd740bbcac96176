package entity

import "github.com/google/uuid"

// Identity is an authenticated user principal. A nil *Identity means
// anonymous/local mode.
type Identity struct {
	ID    uuid.UUID
	Email string
}
