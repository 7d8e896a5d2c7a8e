package admission

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventdesk/eventdesk-api/internal/locking"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrInscriptionNotFound = errors.New("inscription not found")
	ErrCapacityExceeded    = errors.New("no vacancies left for this event")
	ErrIncompleteGuestInfo = errors.New("guests must provide a name and an email")
	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrUnauthenticated     = errors.New("authentication required to cancel")
	ErrNotOwner            = errors.New("not allowed to cancel this inscription")
)

// GuestInfo is the contact data an anonymous registrant supplies. Name and
// Email are mandatory, Phone is not.
type GuestInfo struct {
	Name  string
	Email string
	Phone string
}

// Registrant identifies who is inscribing: an identified user or a guest,
// never both.
type Registrant struct {
	User  *models.User
	Guest *GuestInfo
}

// Controller admits registrants into events. Capacity and duplicate checks
// run inside one transaction while a per-event advisory lock is held, so two
// concurrent attempts cannot both observe a free slot.
type Controller struct {
	db    *gorm.DB
	locks *locking.KeyedMutex
	now   func() time.Time
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db, locks: locking.NewKeyedMutex(), now: time.Now}
}

// Inscribe runs the admission gates in order: event exists, capacity,
// registrant completeness, duplicate key. The first failing gate wins.
func (c *Controller) Inscribe(eventID uint, reg Registrant) (*models.Inscription, error) {
	unlock := c.locks.Lock(fmt.Sprintf("event:%d", eventID))
	defer unlock()

	var record models.Inscription
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var evt models.Event
		if err := tx.First(&evt, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Inscription{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}
		if evt.MaxVacancies > 0 && count >= int64(evt.MaxVacancies) {
			return ErrCapacityExceeded
		}

		record = models.Inscription{
			EventID:          eventID,
			RegistrationTime: c.now(),
			CheckedIn:        false,
		}

		// The duplicate-check key is the registrant's email: the account
		// email for identified users, the supplied one for guests.
		var key string
		switch {
		case reg.User != nil:
			record.UserID = &reg.User.ID
			key = reg.User.Email
		case reg.Guest != nil:
			if reg.Guest.Name == "" || reg.Guest.Email == "" {
				return ErrIncompleteGuestInfo
			}
			record.GuestName = &reg.Guest.Name
			record.GuestEmail = &reg.Guest.Email
			if reg.Guest.Phone != "" {
				record.GuestPhone = &reg.Guest.Phone
			}
			key = reg.Guest.Email
		default:
			return ErrIncompleteGuestInfo
		}

		var existing []models.Inscription
		if err := tx.Where("event_id = ?", eventID).Find(&existing).Error; err != nil {
			return err
		}
		for _, other := range existing {
			if record.UserID != nil && other.UserID != nil && *other.UserID == *record.UserID {
				return ErrAlreadyRegistered
			}
			if other.GuestEmail != nil && *other.GuestEmail == key {
				return ErrAlreadyRegistered
			}
		}

		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CheckIn marks the attendee present. Re-checking-in is a no-op success.
func (c *Controller) CheckIn(id uint) (*models.Inscription, error) {
	var insc models.Inscription
	if err := c.db.Preload("User").First(&insc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInscriptionNotFound
		}
		return nil, err
	}

	if insc.CheckedIn {
		return &insc, nil
	}

	insc.CheckedIn = true
	if err := c.db.Save(&insc).Error; err != nil {
		return nil, err
	}
	return &insc, nil
}

// Cancel removes the inscription permanently. Only the inscription's own
// user or an admin may cancel; anonymous callers are always rejected, so a
// guest inscription is only cancellable by an admin.
func (c *Controller) Cancel(id uint, caller *models.User) error {
	var insc models.Inscription
	if err := c.db.First(&insc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInscriptionNotFound
		}
		return err
	}

	if caller == nil {
		return ErrUnauthenticated
	}
	owns := insc.UserID != nil && *insc.UserID == caller.ID
	if !owns && caller.Role != models.RoleAdmin {
		return ErrNotOwner
	}

	return c.db.Unscoped().Delete(&insc).Error
}

// ListForEvent returns every inscription of an event with linked users
// resolved.
func (c *Controller) ListForEvent(eventID uint) ([]models.Inscription, error) {
	var inscs []models.Inscription
	err := c.db.Preload("User").Where("event_id = ?", eventID).Find(&inscs).Error
	if err != nil {
		return nil, err
	}
	return inscs, nil
}

// ListForUser returns the identified-user inscriptions of one user.
func (c *Controller) ListForUser(userID uint) ([]models.Inscription, error) {
	var inscs []models.Inscription
	err := c.db.Where("user_id = ?", userID).Find(&inscs).Error
	if err != nil {
		return nil, err
	}
	return inscs, nil
}
