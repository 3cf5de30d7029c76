package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"kinopro/internal/domain"
	"kinopro/pkg/utils"
)

const (
	maxExperienceYears = 80
	DefaultMaxPhoto    = 5 << 20
)

var photoExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoStore uploads an object and returns its public URL.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type ResumeService struct {
	resumes  domain.ResumeRepository
	catalog  domain.CatalogRepository
	photos   PhotoStore
	now      Clock
	log      *zap.Logger
	maxPhoto int64
}

// NewResumeService photos may be nil, which disables uploads.
func NewResumeService(resumes domain.ResumeRepository, catalog domain.CatalogRepository, photos PhotoStore, maxPhoto int64, now Clock, l *zap.Logger) *ResumeService {
	if maxPhoto <= 0 {
		maxPhoto = DefaultMaxPhoto
	}
	return &ResumeService{resumes: resumes, catalog: catalog, photos: photos, maxPhoto: maxPhoto, now: now, log: l}
}

type ResumeInput struct {
	ProfessionID    *uint  `json:"professions_id"`
	CityID          *uint  `json:"city_id"`
	Biography       string `json:"biography"`
	MediaURL        string `json:"media_url"`
	ExperienceYears *int   `json:"experience_years"`
}

func validYears(y int) error {
	if y < 0 || y > maxExperienceYears {
		return domain.Validation("experience_years must be between 0 and %d", maxExperienceYears)
	}
	return nil
}

func (s *ResumeService) validate(ctx context.Context, in ResumeInput) error {
	if in.ProfessionID == nil || *in.ProfessionID == 0 || in.CityID == nil || *in.CityID == 0 {
		return domain.Validation("professions_id and city_id are required")
	}
	if in.ExperienceYears != nil {
		if err := validYears(*in.ExperienceYears); err != nil {
			return err
		}
	}
	ok, err := s.catalog.ProfessionExists(ctx, *in.ProfessionID)
	if err != nil {
		return domain.Internal("check profession", err)
	}
	if !ok {
		return domain.Validation("unknown profession %d", *in.ProfessionID)
	}
	if ok, err = s.catalog.CityExists(ctx, *in.CityID); err != nil {
		return domain.Internal("check city", err)
	}
	if !ok {
		return domain.Validation("unknown city %d", *in.CityID)
	}
	return nil
}

// Get returns the stored resume or NotFound.
func (s *ResumeService) Get(ctx context.Context, id uint) (*domain.Resume, error) {
	r, err := s.resumes.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find resume", err)
	}
	if r == nil {
		return nil, domain.NotFound("resume not found")
	}
	return r, nil
}

func (s *ResumeService) view(ctx context.Context, id uint) (*domain.ResumeView, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := domain.NewResumeView(*r, s.now.now())
	return &v, nil
}

func (s *ResumeService) GetByUser(ctx context.Context, userID uint) (*domain.ResumeView, error) {
	r, err := s.resumes.FindByOwner(ctx, userID)
	if err != nil {
		return nil, domain.Internal("find resume", err)
	}
	if r == nil {
		return nil, domain.NotFound("resume not found")
	}
	v := domain.NewResumeView(*r, s.now.now())
	return &v, nil
}

func (s *ResumeService) Create(ctx context.Context, ownerID uint, in ResumeInput) (*domain.ResumeView, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	existing, err := s.resumes.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal("find resume", err)
	}
	if existing != nil {
		return nil, domain.Duplicate("resume already exists for this user")
	}
	r := &domain.Resume{
		OwnerUserID:  ownerID,
		ProfessionID: *in.ProfessionID,
		CityID:       *in.CityID,
		Biography:    in.Biography,
		MediaURL:     in.MediaURL,
	}
	if in.ExperienceYears != nil {
		since := domain.SinceFromYears(*in.ExperienceYears, s.now.now())
		r.Since = &since
	}
	if err := s.resumes.Create(ctx, r); err != nil {
		return nil, domain.Wrap(err, "create resume")
	}
	s.log.Info("resume created", zap.Uint("resume_id", r.ID), zap.Uint("owner", ownerID))
	return s.view(ctx, r.ID)
}

// Update keeps the stored career start unless experience_years is given.
func (s *ResumeService) Update(ctx context.Context, id uint, in ResumeInput) (*domain.ResumeView, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	r.ProfessionID, r.CityID = *in.ProfessionID, *in.CityID
	r.Biography, r.MediaURL = in.Biography, in.MediaURL
	if in.ExperienceYears != nil {
		since := domain.SinceFromYears(*in.ExperienceYears, s.now.now())
		r.Since = &since
	}
	if err := s.resumes.Update(ctx, r); err != nil {
		return nil, domain.Wrap(err, "update resume")
	}
	return s.view(ctx, id)
}

func (s *ResumeService) UpdateExperience(ctx context.Context, id uint, years *int) (*domain.ResumeView, error) {
	if years == nil {
		return nil, domain.Validation("experience_years is required")
	}
	if err := validYears(*years); err != nil {
		return nil, err
	}
	if err := s.resumes.UpdateSince(ctx, id, domain.SinceFromYears(*years, s.now.now())); err != nil {
		return nil, domain.Wrap(err, "update experience")
	}
	return s.view(ctx, id)
}

func (s *ResumeService) SetPhoto(ctx context.Context, id uint, url string) (*domain.ResumeView, error) {
	if err := s.resumes.SetMediaURL(ctx, id, url); err != nil {
		return nil, domain.Wrap(err, "set photo")
	}
	return s.view(ctx, id)
}

type Photo struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *ResumeService) UploadPhoto(ctx context.Context, id uint, p Photo) (*domain.ResumeView, error) {
	if s.photos == nil {
		return nil, domain.Validation("photo uploads are disabled")
	}
	ext, ok := photoExt[p.ContentType]
	if !ok {
		return nil, domain.Validation("photo must be jpeg, png or webp")
	}
	if p.Size <= 0 || p.Size > s.maxPhoto {
		return nil, domain.Validation("photo must be at most %d bytes", s.maxPhoto)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("resumes/%d/%s.%s", id, utils.NewID(), ext)
	url, err := s.photos.Put(ctx, key, p.ContentType, p.Body, p.Size)
	if err != nil {
		return nil, domain.Internal("upload photo", err)
	}
	return s.SetPhoto(ctx, id, url)
}
