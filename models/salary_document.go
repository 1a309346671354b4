package models

import "time"

// SalaryDocument is a file attached to a salary record. Documents are only
// ever created or deleted, never updated. Filename is the generated on-disk
// name; OriginalName is what the client called the file.
type SalaryDocument struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SalaryID     string    `gorm:"size:36;not null;index" json:"salaryId"`
	OriginalName string    `gorm:"size:255;not null" json:"originalName"`
	Filename     string    `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	MimeType     string    `gorm:"size:128" json:"mimeType"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"size:512" json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}
