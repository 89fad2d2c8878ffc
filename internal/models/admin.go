package models

import "time"

// Admin is an entry in the admin contact directory. It is not a login
// identity; accounts used for authentication live in the users table.
type Admin struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Campus      string    `json:"campus,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
