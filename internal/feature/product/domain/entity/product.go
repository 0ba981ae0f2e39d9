// Package entity defines the domain models for the product catalog.
package entity

import "time"

// Product is a catalog item.
type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:255;not null"`
	Category  string  `gorm:"size:100;index"`
	Price     float64 `gorm:"not null;default:0"`
	Completed bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
