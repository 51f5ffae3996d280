package models

import (
	"time"

	"github.com/google/uuid"
)

type Comanda struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	Code uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"code"`

	SalonID uint `json:"salon_id"`

	// At most one non-canceled comanda per appointment, enforced by a
	// partial unique index (see internal/db).
	AppointmentID *uint `json:"appointment_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	CashierID *uint `json:"cashier_id"`

	Status string `gorm:"size:20;default:'open'" json:"status"`

	Subtotal       float64 `gorm:"type:decimal(10,2);default:0" json:"subtotal"`
	TaxAmount      float64 `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0" json:"discount_amount"`
	TotalAmount    float64 `gorm:"type:decimal(10,2);default:0" json:"total_amount"`

	PaymentMethod *string `gorm:"size:30" json:"payment_method"`

	TotalCommission         float64 `gorm:"type:decimal(10,2);default:0" json:"total_commission"`
	TotalServicesCommission float64 `gorm:"type:decimal(10,2);default:0" json:"total_services_commission"`
	TotalProductsCommission float64 `gorm:"type:decimal(10,2);default:0" json:"total_products_commission"`

	Items []ComandaItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	ClosedAt   *time.Time `json:"closed_at"`
	CanceledAt *time.Time `json:"canceled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ComandaItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ComandaID uint `gorm:"index" json:"comanda_id"`

	// Exactly one of ServiceID / ProductID is set.
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`
	ProductID *uint    `json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product,omitempty"`

	Quantity       int     `gorm:"check:quantity > 0" json:"quantity"`
	UnitPrice      float64 `gorm:"type:decimal(10,2)" json:"unit_price"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0" json:"discount_amount"`
	TotalPrice     float64 `gorm:"type:decimal(10,2)" json:"total_price"`

	// Nil until the allocator runs; frozen once the comanda closes.
	CommissionPercentage *float64 `gorm:"type:decimal(10,2)" json:"commission_percentage"`
	CommissionValue      *float64 `gorm:"type:decimal(10,2)" json:"commission_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *ComandaItem) IsProduct() bool {
	return i.ProductID != nil
}

func (i *ComandaItem) IsService() bool {
	return i.ServiceID != nil
}
