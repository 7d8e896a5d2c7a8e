package models

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventTypeWorkshop        EventType = "workshop"
	EventTypeTalk            EventType = "talk"
	EventTypeInternalMeeting EventType = "internal_meeting"
)

// Event is a scheduled happening owned by its creator. Location and Host are
// pointers so that an absent value maps to SQL NULL: two events without a
// location do not share one.
type Event struct {
	gorm.Model
	Title        string    `gorm:"index;not null" json:"title"`
	Description  string    `json:"description"`
	EventType    EventType `gorm:"not null" json:"event_type"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`
	Location     *string   `json:"location,omitempty"`
	Host         *string   `json:"host,omitempty"`
	MaxVacancies int       `gorm:"default:0" json:"max_vacancies"`
	IsPublic     bool      `gorm:"default:true" json:"is_public"`
	CreatorID    uint      `json:"creator_id"`
	Creator      User      `gorm:"foreignKey:CreatorID" json:"-"`

	Materials    []EventMaterial `gorm:"constraint:OnDelete:CASCADE" json:"materials"`
	Inscriptions []Inscription   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings      []Rating        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
