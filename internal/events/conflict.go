package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/gorm"
)

// ConflictError reports a scheduling collision with an existing event.
type ConflictError struct {
	Title string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict with event: %s", e.Title)
}

// CheckConflict scans for another stored event whose time window overlaps
// [start, end) and which shares a location or a host with the candidate.
// Windows are half-open, so back-to-back events with touching endpoints do
// not overlap. An absent location or host matches stored events where that
// attribute is also absent (IS NULL), so two overlapping events with no
// location collide on it. ignoreEventID excludes the event being edited so
// an update cannot collide with itself.
func CheckConflict(db *gorm.DB, start, end time.Time, location, host *string, ignoreEventID uint) error {
	query := db.Model(&models.Event{}).
		Where("start_time < ? AND end_time > ?", end, start)

	var attrClause string
	var attrArgs []interface{}
	if location != nil {
		attrClause = "location = ?"
		attrArgs = append(attrArgs, *location)
	} else {
		attrClause = "location IS NULL"
	}
	if host != nil {
		attrClause += " OR host = ?"
		attrArgs = append(attrArgs, *host)
	} else {
		attrClause += " OR host IS NULL"
	}
	query = query.Where(attrClause, attrArgs...)

	if ignoreEventID != 0 {
		query = query.Where("id != ?", ignoreEventID)
	}

	var conflicting models.Event
	err := query.First(&conflicting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return &ConflictError{Title: conflicting.Title}
}
