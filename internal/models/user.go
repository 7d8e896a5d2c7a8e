package models

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"not null;default:participant" json:"role"`

	Inscriptions []Inscription `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings      []Rating      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
