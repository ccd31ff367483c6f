package entity

import "time"

// Session links an opaque bearer token to a user. A user may hold many.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
