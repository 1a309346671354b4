package models

import "time"

// Employee is an HR record, independent of the login users table.
type Employee struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Department string    `gorm:"size:255" json:"department"`
	Position   string    `gorm:"size:255" json:"position"`
	Status     string    `gorm:"size:64;default:active" json:"status"`
	Notes      string    `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
