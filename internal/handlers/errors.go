package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/admission"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/events"
	"github.com/eventdesk/eventdesk-api/internal/policy"
)

// domainError maps core-package errors onto their stable status codes:
// 404 missing (or hidden-for-privacy), 400 validation and business-rule
// rejections, 401 unauthenticated, 403 forbidden, 409 scheduling conflict.
func domainError(err error) error {
	var conflict *events.ConflictError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &conflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, events.ErrNotFound),
		errors.Is(err, admission.ErrEventNotFound),
		errors.Is(err, admission.ErrInscriptionNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, events.ErrInvalidWindow),
		errors.Is(err, admission.ErrCapacityExceeded),
		errors.Is(err, admission.ErrIncompleteGuestInfo),
		errors.Is(err, admission.ErrAlreadyRegistered):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, admission.ErrUnauthenticated),
		errors.Is(err, policy.ErrUnauthenticated):
		return auth.Unauthenticated(err.Error())
	case errors.Is(err, admission.ErrNotOwner),
		errors.Is(err, policy.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	}
	return huma.Error500InternalServerError(err.Error())
}
