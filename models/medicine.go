package models

import (
	"time"

	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionPurchase   TransactionType = "purchase"
	TransactionSale       TransactionType = "sale"
	TransactionAdjustment TransactionType = "adjustment"
)

// Medicine is a stocked inventory item tracked for quantity and expiry.
type Medicine struct {
	gorm.Model
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	Unit          string    `json:"unit"`
	Price         float64   `json:"price"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Supplier      string    `json:"supplier"`
	MinStockLevel int       `json:"min_stock_level"`
}

// IsExpired reports whether the medicine has passed its expiry date.
func (m Medicine) IsExpired(now time.Time) bool {
	return m.ExpiryDate.Before(now)
}

// StockTransaction records a quantity movement against a medicine.
type StockTransaction struct {
	gorm.Model
	MedicineID uint            `json:"medicine_id"`
	Medicine   Medicine        `json:"-" gorm:"foreignKey:MedicineID"`
	Type       TransactionType `json:"type"`
	Quantity   int             `json:"quantity"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
}
