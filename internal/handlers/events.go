package handlers

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/events"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/eventdesk/eventdesk-api/internal/policy"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	scheduler   *events.Scheduler
	authHandler *auth.AuthHandler
}

func NewEventHandler(db *gorm.DB, scheduler *events.Scheduler, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{db: db, scheduler: scheduler, authHandler: authHandler}
}

type MaterialInput struct {
	Title         string `json:"title" required:"true"`
	URLOrFilename string `json:"url_or_filename" required:"true"`
}

type MaterialResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	URLOrFilename string `json:"url_or_filename"`
}

type EventResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	EventType    models.EventType   `json:"event_type"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
	Location     *string            `json:"location,omitempty"`
	Host         *string            `json:"host,omitempty"`
	MaxVacancies int                `json:"max_vacancies"`
	IsPublic     bool               `json:"is_public"`
	CreatorID    uint               `json:"creator_id"`
	Materials    []MaterialResponse `json:"materials"`
}

func toEventResponse(evt *models.Event) EventResponse {
	materials := make([]MaterialResponse, len(evt.Materials))
	for i, mat := range evt.Materials {
		materials[i] = MaterialResponse{ID: mat.ID, Title: mat.Title, URLOrFilename: mat.URLOrFilename}
	}
	return EventResponse{
		ID:           evt.ID,
		Title:        evt.Title,
		Description:  evt.Description,
		EventType:    evt.EventType,
		StartTime:    evt.StartTime,
		EndTime:      evt.EndTime,
		Location:     evt.Location,
		Host:         evt.Host,
		MaxVacancies: evt.MaxVacancies,
		IsPublic:     evt.IsPublic,
		CreatorID:    evt.CreatorID,
		Materials:    materials,
	}
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Title        string           `json:"title" required:"true"`
		Description  string           `json:"description,omitempty"`
		EventType    models.EventType `json:"event_type" enum:"workshop,talk,internal_meeting" required:"true"`
		StartTime    time.Time        `json:"start_time" required:"true"`
		EndTime      time.Time        `json:"end_time" required:"true"`
		Location     *string          `json:"location,omitempty"`
		Host         *string          `json:"host,omitempty"`
		MaxVacancies int              `json:"max_vacancies,omitempty" minimum:"0" doc:"0 means unlimited"`
		IsPublic     *bool            `json:"is_public,omitempty" doc:"Defaults to true"`
		Materials    []MaterialInput  `json:"materials,omitempty"`
	}
}

type EventDetailResponse struct {
	Body EventResponse
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*EventDetailResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(user, policy.ActionCreateEvent, 0); err != nil {
		return nil, domainError(err)
	}

	isPublic := true
	if input.Body.IsPublic != nil {
		isPublic = *input.Body.IsPublic
	}

	materials := make([]models.EventMaterial, len(input.Body.Materials))
	for i, mat := range input.Body.Materials {
		materials[i] = models.EventMaterial{Title: mat.Title, URLOrFilename: mat.URLOrFilename}
	}

	evt := models.Event{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		EventType:    input.Body.EventType,
		StartTime:    input.Body.StartTime,
		EndTime:      input.Body.EndTime,
		Location:     input.Body.Location,
		Host:         input.Body.Host,
		MaxVacancies: input.Body.MaxVacancies,
		IsPublic:     isPublic,
		CreatorID:    user.ID,
		Materials:    materials,
	}

	if err := h.scheduler.Create(&evt); err != nil {
		return nil, domainError(err)
	}
	return &EventDetailResponse{Body: toEventResponse(&evt)}, nil
}

type ListEventsRequest struct {
	auth.AuthInput
	EventType string `query:"event_type" doc:"Exact event type match"`
	Title     string `query:"title" doc:"Case-insensitive title substring"`
}

type ListEventsResponse struct {
	Body []EventResponse
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	caller := h.authHandler.AuthorizeOptional(ctx, input.Authorization)

	evts, err := events.List(h.db, caller, events.Filters{
		EventType: models.EventType(input.EventType),
		Title:     input.Title,
	})
	if err != nil {
		return nil, domainError(err)
	}

	res := &ListEventsResponse{Body: make([]EventResponse, len(evts))}
	for i := range evts {
		res.Body[i] = toEventResponse(&evts[i])
	}
	return res, nil
}

type GetEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*EventDetailResponse, error) {
	caller := h.authHandler.AuthorizeOptional(ctx, input.Authorization)

	evt, err := events.GetByID(h.db, input.ID, caller)
	if err != nil {
		return nil, domainError(err)
	}
	return &EventDetailResponse{Body: toEventResponse(evt)}, nil
}

type UpdateEventRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Title        *string           `json:"title,omitempty"`
		Description  *string           `json:"description,omitempty"`
		EventType    *models.EventType `json:"event_type,omitempty" enum:"workshop,talk,internal_meeting"`
		StartTime    *time.Time        `json:"start_time,omitempty"`
		EndTime      *time.Time        `json:"end_time,omitempty"`
		Location     *string           `json:"location,omitempty"`
		Host         *string           `json:"host,omitempty"`
		MaxVacancies *int              `json:"max_vacancies,omitempty" minimum:"0"`
		IsPublic     *bool             `json:"is_public,omitempty"`
		Materials    *[]MaterialInput  `json:"materials,omitempty" doc:"Replaces the material list when present"`
	}
}

func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventRequest) (*EventDetailResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	evt, err := events.GetByID(h.db, input.ID, user)
	if err != nil {
		return nil, domainError(err)
	}
	if err := policy.Allow(user, policy.ActionMutateEvent, evt.CreatorID); err != nil {
		return nil, domainError(err)
	}

	patch := events.Patch{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		EventType:    input.Body.EventType,
		StartTime:    input.Body.StartTime,
		EndTime:      input.Body.EndTime,
		Location:     input.Body.Location,
		Host:         input.Body.Host,
		MaxVacancies: input.Body.MaxVacancies,
		IsPublic:     input.Body.IsPublic,
	}
	if input.Body.Materials != nil {
		materials := make([]models.EventMaterial, len(*input.Body.Materials))
		for i, mat := range *input.Body.Materials {
			materials[i] = models.EventMaterial{Title: mat.Title, URLOrFilename: mat.URLOrFilename}
		}
		patch.Materials = &materials
	}

	updated, err := h.scheduler.Update(input.ID, patch)
	if err != nil {
		return nil, domainError(err)
	}
	return &EventDetailResponse{Body: toEventResponse(updated)}, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*struct{}, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	evt, err := events.GetByID(h.db, input.ID, user)
	if err != nil {
		return nil, domainError(err)
	}
	if err := policy.Allow(user, policy.ActionMutateEvent, evt.CreatorID); err != nil {
		return nil, domainError(err)
	}

	if err := h.scheduler.Delete(input.ID); err != nil {
		return nil, domainError(err)
	}
	return nil, nil
}
