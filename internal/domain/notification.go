package domain

import "time"

// Notification levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Notification is a short user-facing message about a board change.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	BookID  string    `json:"bookId,omitempty"`
	At      time.Time `json:"at"`
}
