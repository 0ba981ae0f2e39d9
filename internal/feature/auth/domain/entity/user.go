// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is generated by the store on insert.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. The unique index is the authoritative
	// guard against duplicate registrations.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
