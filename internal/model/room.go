package model

import "time"

type Room struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	RoomNo    int       `gorm:"uniqueIndex;not null" json:"roomNo"`
	UserID    string    `gorm:"index" json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	Beds []Bed `gorm:"foreignKey:RoomID" json:"beds"`
}

type Bed struct {
	ID       string `gorm:"primaryKey" json:"id"`
	RoomID   string `gorm:"index" json:"-"`
	Label    string `gorm:"not null" json:"label"`
	Occupant string `json:"occupant,omitempty"`
}
