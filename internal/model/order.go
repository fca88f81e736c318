package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusNotPaid       PaymentStatus = "not_paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// OrderItem references a product by id. An empty or "custom" product id
// marks an ad-hoc line that carries its own name and price and does not
// touch inventory.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ClientID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	Items         []OrderItem   `gorm:"serializer:json" json:"items"`
	Total         float64       `gorm:"not null;default:0" json:"total"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(32)" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:not_paid" json:"payment_status"`
	AmountPaid    float64       `gorm:"not null;default:0" json:"amount_paid"`
	OrderDate     time.Time     `json:"order_date"`
	DeliveryDate  time.Time     `json:"delivery_date"`
	Note          string        `gorm:"type:text" json:"note"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
