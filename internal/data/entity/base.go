package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and bookkeeping columns owned by the store.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsPersisted reports whether the store has assigned an identity.
func (b Base) IsPersisted() bool {
	return b.ID != uuid.Nil
}
