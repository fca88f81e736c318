package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusCompleted  TicketStatus = "completed"
)

// TaskPrice is a per-task price line. When a ticket carries task prices
// its cost is always the sum of them.
type TaskPrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Ticket struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TicketNumber string       `gorm:"type:varchar(16);not null;index" json:"ticket_number"`
	ClientID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"client_id"`
	DeviceType   string       `gorm:"type:varchar(100);not null" json:"device_type"`
	Brand        string       `gorm:"type:varchar(100);not null" json:"brand"`
	Model        string       `gorm:"type:varchar(100)" json:"model"`
	Tasks        []string     `gorm:"serializer:json" json:"tasks"`
	TaskPrices   []TaskPrice  `gorm:"serializer:json" json:"task_prices,omitempty"`
	Issue        string       `gorm:"type:text" json:"issue"`
	Status       TicketStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Cost         float64      `gorm:"not null;default:0" json:"cost"`
	TechnicianID *uuid.UUID   `gorm:"type:uuid;index" json:"technician_id"`
	Passcode     string       `gorm:"type:varchar(100)" json:"passcode,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
