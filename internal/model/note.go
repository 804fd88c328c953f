package model

import "time"

// Note mirrors the `notes` table. UserID is the owning user and is
// always assigned server-side from the authenticated caller.
type Note struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NotePatch carries the fields of a partial note update. An empty
// string means "not provided": the stored value is left unchanged.
// An intentionally empty value is indistinguishable from an absent
// one under this policy.
type NotePatch struct {
	Title       string
	Description string
	Tag         string
}
