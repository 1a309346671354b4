package models

import (
	"time"

	"github.com/lib/pq"
)

// PCLaptop is a machine bundle referencing component assets by their ids.
type PCLaptop struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Type          string         `gorm:"size:16;not null" json:"type"` // "PC" or "Laptop"
	Name          string         `gorm:"size:255;not null" json:"name"`
	MouseID       string         `gorm:"size:64" json:"mouseId,omitempty"`
	KeyboardID    string         `gorm:"size:64" json:"keyboardId,omitempty"`
	MonitorID     string         `gorm:"size:64" json:"monitorId,omitempty"`
	MotherboardID string         `gorm:"size:64" json:"motherboardId,omitempty"`
	RAMIDs        pq.StringArray `gorm:"type:text[]" json:"ramIds,omitempty"`
	StorageIDs    pq.StringArray `gorm:"type:text[]" json:"storageIds,omitempty"`
	CameraID      string         `gorm:"size:64" json:"cameraId,omitempty"`
	HeadphoneID   string         `gorm:"size:64" json:"headphoneId,omitempty"`
	PowerSupplyID string         `gorm:"size:64" json:"powerSupplyId,omitempty"`
	Notes         string         `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
