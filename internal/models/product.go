package models

import "time"

type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	// Mutated only by the inventory adjuster, inside a transaction.
	StockQuantity int `gorm:"default:0;check:stock_quantity >= 0" json:"stock_quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
