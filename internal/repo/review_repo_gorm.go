package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"kinopro/internal/domain"
	"kinopro/internal/feature/review"
)

// ReviewerFallbackName 评价人没有姓名时显示
const ReviewerFallbackName = "User"

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func toReview(m review.ReviewModel) domain.Review {
	return domain.Review{
		ID:             m.ID,
		Rating:         m.Rating,
		Text:           m.Text,
		ReviewedUserID: m.ReviewedUserID,
		ReviewerUserID: m.ReviewerUserID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *ReviewRepo) Create(ctx context.Context, d *domain.Review) error {
	m := review.ReviewModel{
		Rating:         d.Rating,
		Text:           d.Text,
		ReviewedUserID: d.ReviewedUserID,
		ReviewerUserID: d.ReviewerUserID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		switch {
		case isDupKey(err):
			return domain.Duplicate("you have already reviewed this user")
		case isForeignKey(err):
			return domain.Validation("reviewed user not found")
		}
		return err
	}
	*d = toReview(m)
	return nil
}

func (r *ReviewRepo) first(ctx context.Context, query string, args ...any) (*domain.Review, error) {
	var m review.ReviewModel
	err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := toReview(m)
	return &d, nil
}

func (r *ReviewRepo) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ReviewRepo) FindByPair(ctx context.Context, reviewerID, reviewedID uint) (*domain.Review, error) {
	return r.first(ctx, "reviewer_user_id = ? AND reviewed_user_id = ?", reviewerID, reviewedID)
}

func (r *ReviewRepo) Update(ctx context.Context, id uint, rating float64, text *string) error {
	res := r.db.WithContext(ctx).Model(&review.ReviewModel{}).Where("id = ?", id).Updates(map[string]any{
		"rating":     rating,
		"text":       text,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("review not found")
	}
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&review.ReviewModel{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *ReviewRepo) ListForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	var rows []struct {
		ID                uint
		Rating            float64
		Text              *string
		ReviewedUserID    uint
		ReviewerUserID    uint
		CreatedAt         time.Time
		UpdatedAt         time.Time
		ReviewerFirstName string
		ReviewerLastName  string
	}
	err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select(`rv.id, rv.rating, rv.text, rv.reviewed_user_id, rv.reviewer_user_id,
			rv.created_at, rv.updated_at,
			u.first_name AS reviewer_first_name, u.last_name AS reviewer_last_name`).
		Joins("LEFT JOIN users u ON u.id = rv.reviewer_user_id").
		Where("rv.reviewed_user_id = ?", userID).
		Order("rv.created_at desc, rv.id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.ReviewerFirstName + " " + row.ReviewerLastName)
		if name == "" {
			name = ReviewerFallbackName
		}
		out[i] = domain.Review{
			ID:             row.ID,
			Rating:         row.Rating,
			Text:           row.Text,
			ReviewedUserID: row.ReviewedUserID,
			ReviewerUserID: row.ReviewerUserID,
			ReviewerName:   name,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		}
	}
	return out, nil
}

// Stats 一次分组查询得到各用户的平均分与评价数
func (r *ReviewRepo) Stats(ctx context.Context, userIDs []uint) (map[uint]domain.RatingStat, error) {
	out := make(map[uint]domain.RatingStat, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ReviewedUserID uint
		Avg            float64
		Cnt            int64
	}
	err := r.db.WithContext(ctx).
		Model(&review.ReviewModel{}).
		Select("reviewed_user_id, AVG(rating) AS avg, COUNT(*) AS cnt").
		Where("reviewed_user_id IN ?", userIDs).
		Group("reviewed_user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ReviewedUserID] = domain.RatingStat{Average: row.Avg, Count: row.Cnt}
	}
	return out, nil
}
