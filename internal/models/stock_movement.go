package models

import "time"

const (
	MovementSale   = "sale"
	MovementReturn = "return"
)

// StockMovement é o registro append-only de toda mudança de estoque.
type StockMovement struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	// Signed delta: negative for sale, positive for return.
	Quantity     int    `gorm:"not null" json:"quantity"`
	MovementType string `gorm:"size:20;not null" json:"movement_type"`

	// Comanda that caused the movement.
	ReferenceID uint `gorm:"index" json:"reference_id"`

	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
