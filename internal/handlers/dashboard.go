package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/eventdesk/eventdesk-api/internal/policy"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewDashboardHandler(db *gorm.DB, authHandler *auth.AuthHandler) *DashboardHandler {
	return &DashboardHandler{db: db, authHandler: authHandler}
}

type StatsRequest struct {
	auth.AuthInput
}

type StatsResponse struct {
	Body struct {
		EventCount       int64 `json:"event_count" doc:"Events created by the caller"`
		InscriptionCount int64 `json:"inscription_count" doc:"Inscriptions across the caller's events"`
	}
}

func (h *DashboardHandler) HandleStats(ctx context.Context, input *StatsRequest) (*StatsResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(user, policy.ActionViewStats, 0); err != nil {
		return nil, domainError(err)
	}

	res := &StatsResponse{}
	if err := h.db.Model(&models.Event{}).Where("creator_id = ?", user.ID).Count(&res.Body.EventCount).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to count events")
	}
	err = h.db.Model(&models.Inscription{}).
		Joins("JOIN events ON events.id = inscriptions.event_id").
		Where("events.creator_id = ?", user.ID).
		Count(&res.Body.InscriptionCount).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to count inscriptions")
	}
	return res, nil
}
