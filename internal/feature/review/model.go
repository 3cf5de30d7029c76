package review

import (
	"time"

	"kinopro/internal/feature/user"
)

type ReviewModel struct {
	ID             uint    `gorm:"primaryKey;autoIncrement"`
	Rating         float64 `gorm:"not null;check:chk_reviews_rating,rating >= 0 AND rating <= 5 AND rating * 2 = ROUND(rating * 2)"`
	Text           *string `gorm:"type:text"`
	ReviewedUserID uint    `gorm:"uniqueIndex:idx_review_pair,priority:2;index;not null"`
	ReviewerUserID uint    `gorm:"uniqueIndex:idx_review_pair,priority:1;not null"`

	Reviewed *user.UserModel `gorm:"foreignKey:ReviewedUserID;constraint:OnDelete:CASCADE"`
	Reviewer *user.UserModel `gorm:"foreignKey:ReviewerUserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ReviewModel) TableName() string { return "reviews" }
