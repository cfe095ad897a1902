package models

import (
	"time"
)

// Order is a single employee request for snacks, breakfast or supplies.
// Only Status changes after creation.
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Type       string      `json:"type" gorm:"not null;index"`
	Name       string      `json:"name" gorm:"not null"`
	Department string      `json:"department" gorm:"not null;index"`
	Note       *string     `json:"note" gorm:"type:text"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING';index"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"not null;index"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// Clone returns a deep copy, so callers can hand out orders without sharing
// the item slice or the note pointer.
func (o *Order) Clone() *Order {
	c := *o
	if o.Note != nil {
		note := *o.Note
		c.Note = &note
	}
	c.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		c.Items[i] = item.clone()
	}
	return &c
}
