package models

import (
	"time"

	"gorm.io/gorm"
)

// Inventory представляет складскую позицию: материал на конкретной площадке.
// Уникальность пары площадка/материал не требуется, дубли учитываются отдельно.
type Inventory struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	SiteID        uint       `json:"site_id" gorm:"not null;index"`
	MaterialID    uint       `json:"material_id" gorm:"not null;index"`
	Quantity      int        `json:"quantity" gorm:"not null;default:0"`
	DailyBurnRate float64    `json:"daily_burn_rate" gorm:"not null;default:0"` // статический расход, используется если нет свежих списаний
	LastUsedAt    *time.Time `json:"last_used_at"`

	// Связи
	Site     Site             `json:"-" gorm:"foreignKey:SiteID"`
	Material Material         `json:"-" gorm:"foreignKey:MaterialID"`
	Usage    []InventoryUsage `json:"-" gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
}

// TableName таблица называется inventory, а не inventories
func (Inventory) TableName() string {
	return "inventory"
}

// BeforeCreate хук приводит время последнего использования к UTC
func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.LastUsedAt != nil {
		t := i.LastUsedAt.UTC()
		i.LastUsedAt = &t
	}
	return nil
}

// InventoryUsage запись о списании (check-in). Только добавляется.
type InventoryUsage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	InventoryID  uint      `json:"inventory_id" gorm:"not null;index"`
	UsedQuantity int       `json:"used_quantity" gorm:"not null"`
	UsedAt       time.Time `json:"used_at" gorm:"not null"`
}

// TableName журнал списаний
func (InventoryUsage) TableName() string {
	return "inventory_usage"
}

// BeforeCreate хук для установки времени списания
func (u *InventoryUsage) BeforeCreate(tx *gorm.DB) error {
	if u.UsedAt.IsZero() {
		u.UsedAt = time.Now()
	}
	u.UsedAt = u.UsedAt.UTC()
	return nil
}
