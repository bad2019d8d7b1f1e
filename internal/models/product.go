package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// Prices travel as JSON numbers, the way dashboard clients expect them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product statuses. They are stored but not enforced by the API.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out-of-stock"
)

// DefaultColor is used when a form leaves the color empty.
const DefaultColor = "#000000"

// Product represents a catalog entry managed from the dashboard.
type Product struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string                      `json:"name" gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal             `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity  int                         `json:"quantity" gorm:"not null"`
	Details   string                      `json:"details" gorm:"type:text"`
	Color     string                      `json:"color" gorm:"type:varchar(32)"`
	Images    datatypes.JSONSlice[string] `json:"images"`
	Status    string                      `json:"status" gorm:"type:varchar(20);default:active"`
	CreatedAt time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// EffectiveStatus is the status shown to admins: a product with nothing
// left in stock reads as out-of-stock whatever its stored status.
func (p Product) EffectiveStatus() string {
	if p.Quantity <= 0 {
		return StatusOutOfStock
	}
	if p.Status == "" {
		return StatusActive
	}
	return p.Status
}
