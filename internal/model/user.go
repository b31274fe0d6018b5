// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	ProfileDp    string `json:"profileDp,omitempty"`
	Verified     bool   `gorm:"default:false" json:"verified"`
	// Assigned once, on successful verification
	ShareCode string    `json:"shareCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Rooms []Room `gorm:"foreignKey:UserID" json:"-"`
}
