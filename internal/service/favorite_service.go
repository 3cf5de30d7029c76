package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kinopro/internal/domain"
)

// FavoriteService manages favorite lists. It does not check ownership;
// callers decide who may touch a list.
type FavoriteService struct {
	repo domain.FavoriteRepository
	log  *zap.Logger
}

func NewFavoriteService(repo domain.FavoriteRepository, l *zap.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, log: l}
}

func (s *FavoriteService) ListByOwner(ctx context.Context, ownerID uint) ([]domain.FavoriteList, error) {
	lists, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal("list favorites", err)
	}
	return lists, nil
}

func (s *FavoriteService) Get(ctx context.Context, id uint) (*domain.FavoriteList, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find list", err)
	}
	if l == nil {
		return nil, domain.NotFound("list not found")
	}
	return l, nil
}

func (s *FavoriteService) Create(ctx context.Context, in domain.FavoriteCreate) (*domain.FavoriteList, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, domain.Validation("title is required")
	}
	if in.ListOfIDs.Invalid {
		return nil, domain.Validation("list_of_ids must be an array of ids")
	}
	l := &domain.FavoriteList{
		Title:       strings.TrimSpace(*in.Title),
		Description: in.Description,
		ListOfIDs:   in.ListOfIDs.IDs,
		OwnerUserID: in.OwnerUserID,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, domain.Wrap(err, "create list")
	}
	return l, nil
}

func (s *FavoriteService) Update(ctx context.Context, id uint, p domain.FavoritePatch) (*domain.FavoriteList, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, domain.Validation("nothing to update")
	}
	if p.ListOfIDs.Invalid {
		return nil, domain.Validation("list_of_ids must be an array of ids")
	}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return nil, domain.Validation("title must not be empty")
		}
		p.Title = &t
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		return nil, domain.Wrap(err, "update list")
	}
	return s.Get(ctx, id)
}

func (s *FavoriteService) Remove(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Internal("delete list", err)
	}
	if !ok {
		return domain.NotFound("list not found")
	}
	return nil
}

// AddMember is idempotent; the list's updated_at moves either way.
func (s *FavoriteService) AddMember(ctx context.Context, id, professionalID uint) (*domain.FavoriteList, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddMember(ctx, id, professionalID); err != nil {
		return nil, domain.Internal("add member", err)
	}
	return s.Get(ctx, id)
}

func (s *FavoriteService) RemoveMember(ctx context.Context, id, professionalID uint) (*domain.FavoriteList, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveMember(ctx, id, professionalID); err != nil {
		return nil, domain.Internal("remove member", err)
	}
	return s.Get(ctx, id)
}

// RemoveEverywhere drops the professional from every list of the owner.
// Failures on single lists are logged and skipped; it returns the ids of lists changed.
func (s *FavoriteService) RemoveEverywhere(ctx context.Context, ownerID, professionalID uint) ([]uint, error) {
	ids, err := s.repo.ListIDsContaining(ctx, ownerID, professionalID)
	if err != nil {
		return nil, domain.Internal("find lists", err)
	}
	changed := make([]uint, 0, len(ids))
	for _, id := range ids {
		if err := s.repo.RemoveMember(ctx, id, professionalID); err != nil {
			s.log.Warn("unfavorite: remove member failed",
				zap.Uint("list_id", id), zap.Uint("professional_id", professionalID), zap.Error(err))
			continue
		}
		changed = append(changed, id)
	}
	return changed, nil
}

// FavoritedBy returns the set of professional ids in any list of the owner.
func (s *FavoriteService) FavoritedBy(ctx context.Context, ownerID uint) (map[uint]struct{}, error) {
	ids, err := s.repo.MemberIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal("favorite ids", err)
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
