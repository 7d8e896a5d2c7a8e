package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/admission"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/eventdesk/eventdesk-api/internal/policy"
	"gorm.io/gorm"
)

type InscriptionHandler struct {
	db          *gorm.DB
	controller  *admission.Controller
	authHandler *auth.AuthHandler
}

func NewInscriptionHandler(db *gorm.DB, controller *admission.Controller, authHandler *auth.AuthHandler) *InscriptionHandler {
	return &InscriptionHandler{db: db, controller: controller, authHandler: authHandler}
}

type InscriptionResponse struct {
	ID               uint      `json:"id"`
	EventID          uint      `json:"event_id"`
	UserID           *uint     `json:"user_id,omitempty"`
	GuestName        *string   `json:"guest_name,omitempty"`
	GuestEmail       *string   `json:"guest_email,omitempty"`
	GuestPhone       *string   `json:"guest_phone,omitempty"`
	RegistrationTime time.Time `json:"registration_time"`
	CheckedIn        bool      `json:"checked_in"`
	UserName         string    `json:"user_name,omitempty"`
	UserEmail        string    `json:"user_email,omitempty"`
}

func toInscriptionResponse(insc *models.Inscription) InscriptionResponse {
	return InscriptionResponse{
		ID:               insc.ID,
		EventID:          insc.EventID,
		UserID:           insc.UserID,
		GuestName:        insc.GuestName,
		GuestEmail:       insc.GuestEmail,
		GuestPhone:       insc.GuestPhone,
		RegistrationTime: insc.RegistrationTime,
		CheckedIn:        insc.CheckedIn,
		UserName:         insc.DisplayName(),
		UserEmail:        insc.DisplayEmail(),
	}
}

type InscribeRequest struct {
	auth.AuthInput
	EventID uint `path:"id"`
	Body    struct {
		GuestName  string `json:"guest_name,omitempty"`
		GuestEmail string `json:"guest_email,omitempty" format:"email"`
		GuestPhone string `json:"guest_phone,omitempty"`
	} `required:"false"`
}

type InscriptionDetailResponse struct {
	Body InscriptionResponse
}

func (h *InscriptionHandler) HandleInscribe(ctx context.Context, input *InscribeRequest) (*InscriptionDetailResponse, error) {
	caller := h.authHandler.AuthorizeOptional(ctx, input.Authorization)

	reg := admission.Registrant{User: caller}
	if caller == nil {
		reg.Guest = &admission.GuestInfo{
			Name:  input.Body.GuestName,
			Email: input.Body.GuestEmail,
			Phone: input.Body.GuestPhone,
		}
	}

	insc, err := h.controller.Inscribe(input.EventID, reg)
	if err != nil {
		return nil, domainError(err)
	}

	res := toInscriptionResponse(insc)
	if caller != nil {
		res.UserName = caller.Name
		res.UserEmail = caller.Email
	}
	return &InscriptionDetailResponse{Body: res}, nil
}

type ListInscriptionsRequest struct {
	auth.AuthInput
	EventID uint `path:"id"`
}

type ListInscriptionsResponse struct {
	Body []InscriptionResponse
}

func (h *InscriptionHandler) HandleListInscriptions(ctx context.Context, input *ListInscriptionsRequest) (*ListInscriptionsResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(user, policy.ActionViewInscriptions, 0); err != nil {
		return nil, domainError(err)
	}

	inscs, err := h.controller.ListForEvent(input.EventID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list inscriptions")
	}

	res := &ListInscriptionsResponse{Body: make([]InscriptionResponse, len(inscs))}
	for i := range inscs {
		res.Body[i] = toInscriptionResponse(&inscs[i])
	}
	return res, nil
}

type CheckInRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *InscriptionHandler) HandleCheckIn(ctx context.Context, input *CheckInRequest) (*InscriptionDetailResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(user, policy.ActionCheckIn, 0); err != nil {
		return nil, domainError(err)
	}

	insc, err := h.controller.CheckIn(input.ID)
	if err != nil {
		return nil, domainError(err)
	}
	return &InscriptionDetailResponse{Body: toInscriptionResponse(insc)}, nil
}

type CancelInscriptionRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *InscriptionHandler) HandleCancel(ctx context.Context, input *CancelInscriptionRequest) (*struct{}, error) {
	caller := h.authHandler.AuthorizeOptional(ctx, input.Authorization)

	if err := h.controller.Cancel(input.ID, caller); err != nil {
		return nil, domainError(err)
	}
	return nil, nil
}

type MyInscriptionsRequest struct {
	auth.AuthInput
}

func (h *InscriptionHandler) HandleMyInscriptions(ctx context.Context, input *MyInscriptionsRequest) (*ListInscriptionsResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	inscs, err := h.controller.ListForUser(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list inscriptions")
	}

	res := &ListInscriptionsResponse{Body: make([]InscriptionResponse, len(inscs))}
	for i := range inscs {
		res.Body[i] = toInscriptionResponse(&inscs[i])
		res.Body[i].UserName = user.Name
		res.Body[i].UserEmail = user.Email
	}
	return res, nil
}
