package models

import "time"

// SalaryRecord is a monthly salary entry. UserID is the login name of the
// owning user; only admins may change or delete a record after creation.
type SalaryRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:255;not null;index" json:"userId"`
	EmployeeName string    `gorm:"size:255;not null" json:"employeeName"`
	Month        int       `gorm:"not null" json:"month"`
	Year         int       `gorm:"not null" json:"year"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Notes        string    `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
