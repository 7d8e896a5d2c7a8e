package models

import (
	"gorm.io/gorm"
)

// EventMaterial is a slide deck, recording or handout attached to one event.
// It lives and dies with the event that owns it.
type EventMaterial struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	URLOrFilename string `gorm:"not null" json:"url_or_filename"`
	EventID       uint   `json:"-"`
}
