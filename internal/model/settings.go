package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The ticket taxonomy is a shared, admin-editable vocabulary consumed by
// ticket forms. Device types, brands and tasks are plain named rows;
// models additionally reference the brand they belong to.

type DeviceType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DeviceType) TableName() string {
	return "device_types"
}

func (d *DeviceType) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Brand) TableName() string {
	return "brands"
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DeviceModel keeps the brand reference by name. Renaming a brand
// rewrites BrandID on its models; tickets keep the brand string they
// were created with.
type DeviceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	BrandID   string    `gorm:"type:varchar(100);not null;index" json:"brand_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DeviceModel) TableName() string {
	return "device_models"
}

func (m *DeviceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type TaskType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TaskType) TableName() string {
	return "task_types"
}

func (t *TaskType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TicketSettings is the aggregated taxonomy returned to ticket forms.
type TicketSettings struct {
	DeviceTypes []string      `json:"device_types"`
	Brands      []string      `json:"brands"`
	Models      []DeviceModel `json:"models"`
	Tasks       []string      `json:"tasks"`
}
