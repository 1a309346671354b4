package models

import "time"

// SystemAsset is a single inventory item (monitor, keyboard, phone line...).
// The flat string columns mirror the asset intake form; which ones are filled
// depends on Category.
type SystemAsset struct {
	ID                  string    `gorm:"primaryKey;size:36" json:"id"`
	Category            string    `gorm:"size:128;not null;index" json:"category"`
	Company             string    `gorm:"size:255" json:"company,omitempty"`
	SerialNumber        string    `gorm:"size:255" json:"serialNumber,omitempty"`
	Vendor              string    `gorm:"size:255" json:"vendor,omitempty"`
	PurchaseDate        string    `gorm:"size:64" json:"purchaseDate,omitempty"`
	WarrantyEndDate     string    `gorm:"size:64" json:"warrantyEndDate,omitempty"`
	ProcessorModel      string    `gorm:"size:255" json:"processorModel,omitempty"`
	RAMSize             string    `gorm:"size:64" json:"ramSize,omitempty"`
	StorageSize         string    `gorm:"size:64" json:"storageSize,omitempty"`
	StorageType         string    `gorm:"size:64" json:"storageType,omitempty"`
	Model               string    `gorm:"size:255" json:"model,omitempty"`
	VonageNumber        string    `gorm:"size:64" json:"vonageNumber,omitempty"`
	VonageExtCode       string    `gorm:"size:64" json:"vonageExtCode,omitempty"`
	VonagePassword      string    `gorm:"size:255" json:"vonagePassword,omitempty"`
	VitelNumber         string    `gorm:"size:64" json:"vitelNumber,omitempty"`
	VitelPassword       string    `gorm:"size:255" json:"vitelPassword,omitempty"`
	VitelGlobalNumber   string    `gorm:"size:64" json:"vitelGlobalNumber,omitempty"`
	VitelGlobalPassword string    `gorm:"size:255" json:"vitelGlobalPassword,omitempty"`
	CameraModel         string    `gorm:"size:255" json:"cameraModel,omitempty"`
	HeadphoneModel      string    `gorm:"size:255" json:"headphoneModel,omitempty"`
	PowerSupplyWatts    string    `gorm:"size:64" json:"powerSupplyWatts,omitempty"`
	MonitorSize         string    `gorm:"size:64" json:"monitorSize,omitempty"`
	RefreshRate         string    `gorm:"size:64" json:"refreshRate,omitempty"`
	Resolution          string    `gorm:"size:64" json:"resolution,omitempty"`
	Notes               string    `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
