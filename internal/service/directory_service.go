package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"kinopro/internal/domain"
)

// GatedLimit caps the directory for callers whose profile is incomplete.
const GatedLimit = 10

var directoryQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "directory_queries_total",
	Help: "Directory listings served, by whether filters were applied.",
}, []string{"filters_enabled"})

func init() { prometheus.MustRegister(directoryQueries) }

type RatingSource interface {
	Averages(ctx context.Context, userIDs []uint) (map[uint]domain.RatingStat, error)
	ListForUser(ctx context.Context, userID uint) ([]domain.Review, error)
}

type FavoriteSource interface {
	FavoritedBy(ctx context.Context, ownerID uint) (map[uint]struct{}, error)
}

type DirectoryService struct {
	pros      domain.ProfessionalRepository
	users     domain.UserRepository
	ratings   RatingSource
	favorites FavoriteSource
	now       Clock
	log       *zap.Logger
}

func NewDirectoryService(pros domain.ProfessionalRepository, users domain.UserRepository, ratings RatingSource, favorites FavoriteSource, now Clock, l *zap.Logger) *DirectoryService {
	return &DirectoryService{pros: pros, users: users, ratings: ratings, favorites: favorites, now: now, log: l}
}

// ProfileComplete is true for anonymous callers and false for unknown ones.
func (s *DirectoryService) ProfileComplete(ctx context.Context, requesterID *uint) (bool, error) {
	if requesterID == nil {
		return true, nil
	}
	u, err := s.users.FindByID(ctx, *requesterID)
	if err != nil {
		return false, domain.Internal("find requester", err)
	}
	return u != nil && u.ProfileComplete, nil
}

func (s *DirectoryService) List(ctx context.Context, f domain.DirectoryFilters, requesterID *uint) (*domain.DirectoryResult, error) {
	complete, err := s.ProfileComplete(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	q := domain.ProfessionalQuery{Limit: GatedLimit}
	if complete {
		q = domain.ProfessionalQuery{
			ProfessionID:      f.ProfessionID,
			ProfessionGroupID: f.ProfessionGroupID,
			CityID:            f.CityID,
			HasPhoto:          f.HasPhoto,
		}
	}
	rows, err := s.pros.Find(ctx, q)
	if err != nil {
		return nil, domain.Internal("find professionals", err)
	}
	items, err := s.derive(ctx, rows, requesterID)
	if err != nil {
		return nil, err
	}
	if complete {
		kept := items[:0]
		for _, p := range items {
			if matches(p, f) {
				kept = append(kept, p)
			}
		}
		items = kept
	}
	directoryQueries.WithLabelValues(strconv.FormatBool(complete)).Inc()
	return &domain.DirectoryResult{Professionals: items, FiltersEnabled: complete, TotalCount: len(items)}, nil
}

// Get returns one professional by resume id with their reviews, newest first.
func (s *DirectoryService) Get(ctx context.Context, resumeID uint, requesterID *uint) (*domain.Professional, error) {
	rows, err := s.pros.Find(ctx, domain.ProfessionalQuery{ResumeID: &resumeID})
	if err != nil {
		return nil, domain.Internal("find professional", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("professional not found")
	}
	items, err := s.derive(ctx, rows, requesterID)
	if err != nil {
		return nil, err
	}
	p := items[0]
	reviews, err := s.ratings.ListForUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews
	return &p, nil
}

func (s *DirectoryService) derive(ctx context.Context, rows []domain.ProfessionalRow, requesterID *uint) ([]domain.Professional, error) {
	userIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}
	stats, err := s.ratings.Averages(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	var favs map[uint]struct{}
	if requesterID != nil && s.favorites != nil {
		if favs, err = s.favorites.FavoritedBy(ctx, *requesterID); err != nil {
			return nil, err
		}
	}
	now := s.now.now()
	out := make([]domain.Professional, 0, len(rows))
	for _, r := range rows {
		p := buildProfessional(r, stats[r.UserID], now)
		_, p.IsFavorite = favs[r.ResumeID]
		out = append(out, p)
	}
	return out, nil
}

func buildProfessional(r domain.ProfessionalRow, st domain.RatingStat, now time.Time) domain.Professional {
	p := domain.Professional{
		ID:                r.ResumeID,
		UserID:            r.UserID,
		Name:              domain.DisplayName(r.FirstName, r.LastName, r.Email),
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		ProfessionID:      r.ProfessionID,
		Profession:        r.ProfessionName,
		ProfessionGroupID: r.ProfessionGroupID,
		ProfessionGroup:   r.ProfessionGroupName,
		CityID:            r.CityID,
		City:              r.CityName,
		Biography:         r.Biography,
		MediaURL:          r.MediaURL,
		ReviewCount:       st.Count,
		HasFeedback:       st.Count > 0,
	}
	if r.Since != nil {
		since := domain.FormatDate(*r.Since)
		years := domain.ExperienceYears(*r.Since, now)
		label := domain.ExperienceLabel(years)
		p.Since, p.ExperienceYears, p.Experience = &since, &years, &label
	}
	if st.Count > 0 {
		avg := st.Average
		p.Rating = &avg
	}
	return p
}

// matches applies the filters that need derived fields or case folding.
// Unknown experience fails any experience bound; a missing rating fails
// only a positive lower bound.
func matches(p domain.Professional, f domain.DirectoryFilters) bool {
	if f.ExperienceFrom != nil && (p.ExperienceYears == nil || *p.ExperienceYears < *f.ExperienceFrom) {
		return false
	}
	if f.ExperienceTo != nil && (p.ExperienceYears == nil || *p.ExperienceYears > *f.ExperienceTo) {
		return false
	}
	if f.RatingFrom != nil {
		if p.Rating == nil {
			if *f.RatingFrom > 0 {
				return false
			}
		} else if *p.Rating < *f.RatingFrom {
			return false
		}
	}
	if f.RatingTo != nil && p.Rating != nil && *p.Rating > *f.RatingTo {
		return false
	}
	if f.HasReviews && !p.HasFeedback {
		return false
	}
	if f.HasPhoto && strings.TrimSpace(p.MediaURL) == "" {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		hay := []string{p.FirstName, p.LastName, p.Profession, p.Biography, p.City}
		found := false
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
