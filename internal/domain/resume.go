package domain

import (
	"context"
	"time"
)

// Resume is a professional's public card. Since is the only persisted form of experience.
type Resume struct {
	ID                  uint       `json:"id"`
	OwnerUserID         uint       `json:"owner_user_id"`
	ProfessionID        uint       `json:"professions_id"`
	ProfessionName      string     `json:"profession_name"`
	ProfessionGroupID   uint       `json:"profession_group_id"`
	ProfessionGroupName string     `json:"profession_group_name"`
	CityID              uint       `json:"city_id"`
	CityName            string     `json:"city_name"`
	Biography           string     `json:"biography"`
	MediaURL            string     `json:"media_url"`
	Since               *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ResumeView is a resume with fields derived at read time.
type ResumeView struct {
	Resume
	SinceDate       *string `json:"since"`
	ExperienceYears *int    `json:"experience_years"`
}

func NewResumeView(r Resume, now time.Time) ResumeView {
	v := ResumeView{Resume: r}
	if r.Since != nil {
		s := FormatDate(*r.Since)
		years := ExperienceYears(*r.Since, now)
		v.SinceDate, v.ExperienceYears = &s, &years
	}
	return v
}

type ResumeRepository interface {
	// Create inserts the resume and marks the owner's profile complete in one transaction.
	Create(ctx context.Context, r *Resume) error
	FindByID(ctx context.Context, id uint) (*Resume, error)
	FindByOwner(ctx context.Context, ownerID uint) (*Resume, error)
	Update(ctx context.Context, r *Resume) error
	UpdateSince(ctx context.Context, id uint, since time.Time) error
	SetMediaURL(ctx context.Context, id uint, url string) error
}
