package models

import (
	"time"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	LastName     string    `gorm:"not null"                 json:"lastname"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;index"           json:"name"`
	Price     float64   `gorm:"not null"                 json:"price"`
	Stock     uint      `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	LastName  string    `gorm:"not null"                 json:"lastname"`
	Company   string    `gorm:"not null"                 json:"company"`
	Email     string    `gorm:"unique;not null"          json:"email"`
	Phone     string    `json:"phone"`
	SellerID  uint      `gorm:"index;not null"           json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  uint        `gorm:"index;not null"           json:"client_id"`
	SellerID  uint        `gorm:"index;not null"           json:"seller_id"`
	Total     float64     `gorm:"not null"                 json:"total"`
	Status    string      `gorm:"not null;default:PENDING" json:"status"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID"       json:"lines"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderLine snapshots name and price at placement time so later product
// edits do not rewrite order history.
type OrderLine struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	ProductID uint    `gorm:"not null"                 json:"product_id"`
	Quantity  uint    `gorm:"check:quantity>0"         json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}
