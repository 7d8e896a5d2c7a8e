package policy

import (
	"errors"

	"github.com/eventdesk/eventdesk-api/internal/models"
)

// Action is a capability a caller may or may not hold. Every gated operation
// declares the one it needs instead of checking roles inline.
type Action string

const (
	ActionCreateEvent      Action = "event:create"
	ActionMutateEvent      Action = "event:mutate"
	ActionListUsers        Action = "user:list"
	ActionManageUsers      Action = "user:manage"
	ActionViewInscriptions Action = "inscription:list"
	ActionCheckIn          Action = "inscription:checkin"
	ActionViewStats        Action = "stats:view"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient privileges")
)

// rule declares which roles may perform an action and whether owning the
// target resource is sufficient on its own.
type rule struct {
	roles        map[models.Role]bool
	ownerAllowed bool
}

var rules = map[Action]rule{
	ActionCreateEvent:      {roles: roleSet(models.RoleOrganizer, models.RoleAdmin)},
	ActionMutateEvent:      {roles: roleSet(models.RoleAdmin), ownerAllowed: true},
	ActionListUsers:        {roles: roleSet(models.RoleOrganizer, models.RoleAdmin)},
	ActionManageUsers:      {roles: roleSet(models.RoleAdmin)},
	ActionViewInscriptions: {roles: roleSet(models.RoleOrganizer, models.RoleAdmin)},
	ActionCheckIn:          {roles: roleSet(models.RoleOrganizer, models.RoleAdmin)},
	ActionViewStats:        {roles: roleSet(models.RoleOrganizer, models.RoleAdmin)},
}

func roleSet(roles ...models.Role) map[models.Role]bool {
	set := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

// Allow reports whether caller may perform action. ownerID identifies the
// user owning the target resource, or 0 when ownership does not apply.
func Allow(caller *models.User, action Action, ownerID uint) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	r, ok := rules[action]
	if !ok {
		return ErrForbidden
	}
	if r.roles[caller.Role] {
		return nil
	}
	if r.ownerAllowed && ownerID != 0 && caller.ID == ownerID {
		return nil
	}
	return ErrForbidden
}
