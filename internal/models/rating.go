package models

import (
	"gorm.io/gorm"
)

// Rating is a 1-5 star review of an event left by a user.
type Rating struct {
	gorm.Model
	EventID uint   `gorm:"not null" json:"event_id"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `json:"comment"`
}
