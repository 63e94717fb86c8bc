package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderTimeLayout is how the barista screen shows when an order came in
const OrderTimeLayout = "15:04:05"

// Order is one resolved recommendation placed by a customer. It is never
// modified after it is created.
type Order struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Seq         uint       `gorm:"not null;index" json:"-"` // position within the session log, 1-based
	SessionID   string     `gorm:"not null;index;size:36" json:"-"`
	FlavorMain  FlavorMain `gorm:"not null;size:1" json:"flavor_main"`
	FlavorSub   FlavorSub  `gorm:"not null;size:1" json:"flavor_sub"`
	Bean        Bean       `gorm:"not null;size:8" json:"bean"`
	Recipe      Recipe     `gorm:"not null;size:8" json:"recipe"`
	BeanLabel   string     `gorm:"not null" json:"bean_label"`
	RecipeLabel string     `gorm:"not null" json:"recipe_label"`
	Time        string     `gorm:"-" json:"time"` // computed field, CreatedAt as HH:MM:SS
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// AfterFind fills in the computed display time for rows loaded from the database
func (o *Order) AfterFind(tx *gorm.DB) error {
	o.Time = o.CreatedAt.Format(OrderTimeLayout)
	return nil
}
