package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusCompleted InvoiceStatus = "completed"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Invoice struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	InvoiceNumber string        `gorm:"type:varchar(16);not null;index" json:"invoice_number"`
	Date          time.Time     `gorm:"not null" json:"date"`
	ClientID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	Items         []InvoiceItem `gorm:"serializer:json" json:"items"`
	Subtotal      float64       `gorm:"not null;default:0" json:"subtotal"`
	Tax           float64       `gorm:"not null;default:0" json:"tax"`
	Total         float64       `gorm:"not null;default:0" json:"total"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
