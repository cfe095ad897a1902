package models

// OrderItem is one product line of an order. OrderID exists for the foreign
// key only; items are always read and written through their order.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"-" gorm:"not null;index"`
	Link        *string `json:"link" gorm:"type:varchar(2048)"`
	ProductName string  `json:"productName" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null;default:1"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// DefaultItemQuantity is used when a request leaves the quantity out.
const DefaultItemQuantity = 1

func (i OrderItem) clone() OrderItem {
	if i.Link != nil {
		link := *i.Link
		i.Link = &link
	}
	return i
}
