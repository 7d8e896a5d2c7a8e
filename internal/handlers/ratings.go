package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/gorm"
)

type RatingHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewRatingHandler(db *gorm.DB, authHandler *auth.AuthHandler) *RatingHandler {
	return &RatingHandler{db: db, authHandler: authHandler}
}

type RatingResponse struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRatingResponse(rating *models.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		EventID:   rating.EventID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}
}

type CreateRatingRequest struct {
	auth.AuthInput
	Body struct {
		EventID uint   `json:"event_id" required:"true"`
		UserID  uint   `json:"user_id" required:"true"`
		Rating  int    `json:"rating" minimum:"1" maximum:"5" required:"true"`
		Comment string `json:"comment,omitempty"`
	}
}

type RatingDetailResponse struct {
	Body RatingResponse
}

func (h *RatingHandler) HandleCreateRating(ctx context.Context, input *CreateRatingRequest) (*RatingDetailResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if input.Body.UserID != user.ID {
		return nil, huma.Error403Forbidden("Cannot rate on behalf of another user")
	}

	rating := models.Rating{
		EventID: input.Body.EventID,
		UserID:  input.Body.UserID,
		Rating:  input.Body.Rating,
		Comment: input.Body.Comment,
	}
	if err := h.db.Create(&rating).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create rating: " + err.Error())
	}
	return &RatingDetailResponse{Body: toRatingResponse(&rating)}, nil
}

type ListEventRatingsRequest struct {
	EventID uint `path:"id"`
}

type ListEventRatingsResponse struct {
	Body []RatingResponse
}

func (h *RatingHandler) HandleListEventRatings(ctx context.Context, input *ListEventRatingsRequest) (*ListEventRatingsResponse, error) {
	var ratings []models.Rating
	if err := h.db.Where("event_id = ?", input.EventID).Find(&ratings).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list ratings")
	}

	res := &ListEventRatingsResponse{Body: make([]RatingResponse, len(ratings))}
	for i := range ratings {
		res.Body[i] = toRatingResponse(&ratings[i])
	}
	return res, nil
}
