package domain

import (
	"context"
	"time"
)

// ProfessionalRow is one resume joined with its owner and reference names.
type ProfessionalRow struct {
	ResumeID            uint
	UserID              uint
	Email               string
	FirstName           string
	LastName            string
	ProfessionID        uint
	ProfessionName      string
	ProfessionGroupID   uint
	ProfessionGroupName string
	CityID              uint
	CityName            string
	Biography           string
	MediaURL            string
	Since               *time.Time
}

// ProfessionalQuery narrows the join in the store. Zero values mean "any".
type ProfessionalQuery struct {
	ResumeID          *uint
	ProfessionID      *uint
	ProfessionGroupID *uint
	CityID            *uint
	HasPhoto          bool
	Limit             int
}

type ProfessionalRepository interface {
	// Find returns rows ordered by resume id, newest first.
	Find(ctx context.Context, q ProfessionalQuery) ([]ProfessionalRow, error)
}

type DirectoryFilters struct {
	ProfessionID      *uint
	ProfessionGroupID *uint
	CityID            *uint
	ExperienceFrom    *int
	ExperienceTo      *int
	RatingFrom        *float64
	RatingTo          *float64
	HasPhoto          bool
	HasReviews        bool
	Search            string
}

// Professional is a directory item.
type Professional struct {
	ID                uint     `json:"id"`
	UserID            uint     `json:"userId"`
	Name              string   `json:"name"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	ProfessionID      uint     `json:"professionId"`
	Profession        string   `json:"profession"`
	ProfessionGroupID uint     `json:"professionGroupId"`
	ProfessionGroup   string   `json:"professionGroup"`
	CityID            uint     `json:"cityId"`
	City              string   `json:"city"`
	Biography         string   `json:"biography"`
	MediaURL          string   `json:"mediaUrl"`
	Since             *string  `json:"since"`
	ExperienceYears   *int     `json:"experienceYears"`
	Experience        *string  `json:"experience"`
	Rating            *float64 `json:"rating"`
	ReviewCount       int64    `json:"reviewCount"`
	HasFeedback       bool     `json:"hasFeedback"`
	IsFavorite        bool     `json:"isFavorite"`
	Reviews           []Review `json:"reviews,omitempty"`
}

type DirectoryResult struct {
	Professionals  []Professional `json:"professionals"`
	FiltersEnabled bool           `json:"filtersEnabled"`
	TotalCount     int            `json:"totalCount"`
}
