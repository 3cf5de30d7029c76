package domain

import (
	"context"
	"math"
	"time"
)

type Review struct {
	ID             uint      `json:"id"`
	Rating         float64   `json:"rating"`
	Text           *string   `json:"text"`
	ReviewedUserID uint      `json:"reviewed_user_id"`
	ReviewerUserID uint      `json:"reviewer_user_id"`
	ReviewerName   string    `json:"reviewer_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ReviewInput struct {
	Rating         *float64 `json:"rating"`
	Text           *string  `json:"text"`
	ReviewedUserID uint     `json:"reviewed_user_id"`
	ReviewerUserID uint     `json:"-"`
}

// RatingStat aggregates the reviews targeting one user.
type RatingStat struct {
	Average float64
	Count   int64
}

// ValidRating reports whether r is one of 0, 0.5, 1, ..., 5.
func ValidRating(r float64) bool {
	if math.IsNaN(r) || r < 0 || r > 5 {
		return false
	}
	return r*2 == math.Trunc(r*2)
}

// RoundRating rounds a mean to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	FindByPair(ctx context.Context, reviewerID, reviewedID uint) (*Review, error)
	Update(ctx context.Context, id uint, rating float64, text *string) error
	Delete(ctx context.Context, id uint) (bool, error)
	// ListForUser returns reviews targeting userID newest first, with reviewer names.
	ListForUser(ctx context.Context, userID uint) ([]Review, error)
	Stats(ctx context.Context, userIDs []uint) (map[uint]RatingStat, error)
}
