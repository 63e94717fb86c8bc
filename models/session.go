package models

import "time"

// Session records when a browser session that has placed orders was last
// active. Idle sessions are expired together with their orders.
type Session struct {
	ID         string    `gorm:"primaryKey;size:36"`
	LastSeenAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}
