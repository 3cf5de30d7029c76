package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"kinopro/internal/domain"
)

var reviewsCreated = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "reviews_created_total",
	Help: "Reviews accepted.",
})

func init() { prometheus.MustRegister(reviewsCreated) }

// ReviewService does not check authorship; callers compare ReviewerUserID.
type ReviewService struct {
	repo  domain.ReviewRepository
	users domain.UserRepository
	log   *zap.Logger
}

func NewReviewService(repo domain.ReviewRepository, users domain.UserRepository, l *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, users: users, log: l}
}

func checkRating(r *float64) error {
	if r == nil {
		return domain.Validation("rating is required")
	}
	if !domain.ValidRating(*r) {
		return domain.Validation("rating must be between 0 and 5 in steps of 0.5")
	}
	return nil
}

func (s *ReviewService) Create(ctx context.Context, in domain.ReviewInput) (*domain.Review, error) {
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}
	if in.ReviewedUserID == 0 {
		return nil, domain.Validation("reviewed_user_id is required")
	}
	target, err := s.users.FindByID(ctx, in.ReviewedUserID)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if target == nil {
		return nil, domain.Validation("reviewed user not found")
	}
	existing, err := s.repo.FindByPair(ctx, in.ReviewerUserID, in.ReviewedUserID)
	if err != nil {
		return nil, domain.Internal("find review", err)
	}
	if existing != nil {
		return nil, domain.Duplicate("you have already reviewed this user")
	}
	r := &domain.Review{
		Rating:         *in.Rating,
		Text:           in.Text,
		ReviewedUserID: in.ReviewedUserID,
		ReviewerUserID: in.ReviewerUserID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, domain.Wrap(err, "create review")
	}
	reviewsCreated.Inc()
	return r, nil
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*domain.Review, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find review", err)
	}
	if r == nil {
		return nil, domain.NotFound("review not found")
	}
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, id uint, rating *float64, text *string) (*domain.Review, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := checkRating(rating); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, *rating, text); err != nil {
		return nil, domain.Wrap(err, "update review")
	}
	return s.Get(ctx, id)
}

func (s *ReviewService) Remove(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Internal("delete review", err)
	}
	if !ok {
		return domain.NotFound("review not found")
	}
	return nil
}

func (s *ReviewService) ListForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	out, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal("list reviews", err)
	}
	return out, nil
}

// AverageRating is nil when the user has no reviews.
func (s *ReviewService) AverageRating(ctx context.Context, userID uint) (*float64, error) {
	stats, err := s.Averages(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	st, ok := stats[userID]
	if !ok || st.Count == 0 {
		return nil, nil
	}
	return &st.Average, nil
}

// Averages returns rounded means and counts for users with at least one review.
func (s *ReviewService) Averages(ctx context.Context, userIDs []uint) (map[uint]domain.RatingStat, error) {
	stats, err := s.repo.Stats(ctx, userIDs)
	if err != nil {
		return nil, domain.Internal("rating stats", err)
	}
	for id, st := range stats {
		st.Average = domain.RoundRating(st.Average)
		stats[id] = st
	}
	return stats, nil
}
