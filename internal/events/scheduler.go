package events

import (
	"errors"
	"time"

	"github.com/eventdesk/eventdesk-api/internal/locking"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrInvalidWindow = errors.New("event start must be before its end")
)

// scheduleKey serializes every conflict check + write. Conflicts cut across
// events (shared location or host), so the lock is schedule-wide.
const scheduleKey = "schedule"

// Scheduler stores events, running the conflict detector inside the same
// transaction as the write so concurrent creates cannot both pass the check.
type Scheduler struct {
	db    *gorm.DB
	locks *locking.KeyedMutex
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{db: db, locks: locking.NewKeyedMutex()}
}

// Create validates the time window, checks for collisions and stores the
// event with its materials.
func (s *Scheduler) Create(evt *models.Event) error {
	if !evt.StartTime.Before(evt.EndTime) {
		return ErrInvalidWindow
	}

	unlock := s.locks.Lock(scheduleKey)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := CheckConflict(tx, evt.StartTime, evt.EndTime, evt.Location, evt.Host, 0); err != nil {
			return err
		}
		return tx.Create(evt).Error
	})
}

// Patch carries the fields of an event update; nil means unchanged. A
// non-nil Materials replaces the whole attachment list.
type Patch struct {
	Title        *string
	Description  *string
	EventType    *models.EventType
	StartTime    *time.Time
	EndTime      *time.Time
	Location     *string
	Host         *string
	MaxVacancies *int
	IsPublic     *bool
	Materials    *[]models.EventMaterial
}

func (p *Patch) apply(evt *models.Event) {
	if p.Title != nil {
		evt.Title = *p.Title
	}
	if p.Description != nil {
		evt.Description = *p.Description
	}
	if p.EventType != nil {
		evt.EventType = *p.EventType
	}
	if p.StartTime != nil {
		evt.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		evt.EndTime = *p.EndTime
	}
	if p.Location != nil {
		evt.Location = p.Location
	}
	if p.Host != nil {
		evt.Host = p.Host
	}
	if p.MaxVacancies != nil {
		evt.MaxVacancies = *p.MaxVacancies
	}
	if p.IsPublic != nil {
		evt.IsPublic = *p.IsPublic
	}
}

// Update applies the patch and re-runs the full conflict scan against the
// patched record, excluding the event itself, even when the window and
// placement did not change.
func (s *Scheduler) Update(id uint, patch Patch) (*models.Event, error) {
	unlock := s.locks.Lock(scheduleKey)
	defer unlock()

	var updated models.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var evt models.Event
		if err := tx.Preload("Materials").First(&evt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		patch.apply(&evt)
		if !evt.StartTime.Before(evt.EndTime) {
			return ErrInvalidWindow
		}
		if err := CheckConflict(tx, evt.StartTime, evt.EndTime, evt.Location, evt.Host, evt.ID); err != nil {
			return err
		}

		if patch.Materials != nil {
			if err := tx.Unscoped().Where("event_id = ?", evt.ID).Delete(&models.EventMaterial{}).Error; err != nil {
				return err
			}
			replacement := make([]models.EventMaterial, len(*patch.Materials))
			for i, mat := range *patch.Materials {
				replacement[i] = models.EventMaterial{
					Title:         mat.Title,
					URLOrFilename: mat.URLOrFilename,
					EventID:       evt.ID,
				}
			}
			evt.Materials = replacement
		}

		if err := tx.Save(&evt).Error; err != nil {
			return err
		}
		updated = evt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the event permanently; materials and inscriptions go with
// it through the foreign-key cascade.
func (s *Scheduler) Delete(id uint) error {
	res := s.db.Unscoped().Delete(&models.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
