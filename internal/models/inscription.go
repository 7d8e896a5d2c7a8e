package models

import (
	"time"

	"gorm.io/gorm"
)

// Inscription binds a person to an event. Either UserID is set (identified
// user) or the guest fields are (anonymous guest), never both. The composite
// unique indexes back the duplicate-registration rules at the storage layer;
// NULLs compare distinct, so guest rows never trip the user index and vice
// versa.
type Inscription struct {
	gorm.Model
	EventID          uint      `gorm:"not null;uniqueIndex:idx_event_user;uniqueIndex:idx_event_guest" json:"event_id"`
	UserID           *uint     `gorm:"uniqueIndex:idx_event_user" json:"user_id,omitempty"`
	User             *User     `gorm:"foreignKey:UserID" json:"-"`
	GuestName        *string   `json:"guest_name,omitempty"`
	GuestEmail       *string   `gorm:"uniqueIndex:idx_event_guest" json:"guest_email,omitempty"`
	GuestPhone       *string   `json:"guest_phone,omitempty"`
	RegistrationTime time.Time `gorm:"not null" json:"registration_time"`
	CheckedIn        bool      `gorm:"default:false" json:"checked_in"`
}

// DisplayName prefers the linked user's name over the guest name.
func (i *Inscription) DisplayName() string {
	if i.User != nil {
		return i.User.Name
	}
	if i.GuestName != nil {
		return *i.GuestName
	}
	return ""
}

// DisplayEmail prefers the linked user's email over the guest email.
func (i *Inscription) DisplayEmail() string {
	if i.User != nil {
		return i.User.Email
	}
	if i.GuestEmail != nil {
		return *i.GuestEmail
	}
	return ""
}
