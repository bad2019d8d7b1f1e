package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImageSet records the URLs produced by one standalone upload. It has no
// link back to any product.
type ImageSet struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Images    datatypes.JSONSlice[string] `json:"images" gorm:"not null"`
	CreatedAt time.Time                   `json:"createdAt" gorm:"index"`
}
