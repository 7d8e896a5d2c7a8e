package events

import (
	"errors"
	"strings"

	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/gorm"
)

// Filters narrows a listing after the visibility gate has been applied.
type Filters struct {
	EventType models.EventType
	Title     string
}

// List returns the events visible to caller, most recent start first.
// Anonymous callers and participants only see public events.
func List(db *gorm.DB, caller *models.User, f Filters) ([]models.Event, error) {
	query := db.Model(&models.Event{}).Preload("Materials")

	if !canSeePrivate(caller) {
		query = query.Where("is_public = ?", true)
	}
	if f.EventType != "" {
		query = query.Where("event_type = ?", f.EventType)
	}
	if f.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}

	var evts []models.Event
	if err := query.Order("start_time DESC").Find(&evts).Error; err != nil {
		return nil, err
	}
	return evts, nil
}

// GetByID applies the same gate as List. A private event hidden from the
// caller is indistinguishable from a missing one.
func GetByID(db *gorm.DB, id uint, caller *models.User) (*models.Event, error) {
	var evt models.Event
	err := db.Preload("Materials").First(&evt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !evt.IsPublic && !canSeePrivate(caller) {
		return nil, ErrNotFound
	}
	return &evt, nil
}

func canSeePrivate(caller *models.User) bool {
	return caller != nil && (caller.Role == models.RoleOrganizer || caller.Role == models.RoleAdmin)
}
