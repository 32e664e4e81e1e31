package session

import "time"

// Session is the persisted user-session state. There is a single row with ID 1.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tier      string    `json:"tier"`
	Picture   string    `json:"picture"`
	OutputDir string    `json:"output_dir"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Seed holds the values a new session starts from.
type Seed struct {
	Tier      string
	Picture   string
	OutputDir string
}
