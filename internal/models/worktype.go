package models

import "time"

// WorkType is a named category of maintenance work (Electrical, Plumbing, ...).
// Names are unique and stored trimmed.
type WorkType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
