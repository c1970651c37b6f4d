package entity

import (
	"time"
)

// Base is embedded by mutable entities. IDs are assigned by the store
// (bigserial), so ID stays zero until the insert returns.
type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BaseSimple is embedded by immutable entities.
type BaseSimple struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
