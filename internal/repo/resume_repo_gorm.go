package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kinopro/internal/domain"
	"kinopro/internal/feature/resume"
	"kinopro/internal/feature/user"
)

type ResumeRepo struct{ db *gorm.DB }

func NewResumeRepo(db *gorm.DB) *ResumeRepo { return &ResumeRepo{db: db} }

type resumeRow struct {
	ID                  uint
	OwnerUserID         uint
	ProfessionsID       uint
	CityID              uint
	Biography           string
	MediaURL            string
	Since               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ProfessionName      string
	ProfessionGroupID   uint
	ProfessionGroupName string
	CityName            string
}

const resumeSelect = `r.id, r.owner_user_id, r.professions_id, r.city_id, r.biography, r.media_url,
	r.since, r.created_at, r.updated_at,
	COALESCE(p.name, '') AS profession_name, COALESCE(p.group_id, 0) AS profession_group_id,
	COALESCE(g.name, '') AS profession_group_name, COALESCE(c.city, '') AS city_name`

func (r *ResumeRepo) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("resumes r").
		Select(resumeSelect).
		Joins("LEFT JOIN professions p ON p.id = r.professions_id").
		Joins("LEFT JOIN profession_groups g ON g.id = p.group_id").
		Joins("LEFT JOIN cities c ON c.id = r.city_id")
}

func sinceOf(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}

func sinceString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domain.FormatDate(*t)
	return &s
}

func (m resumeRow) toDomain() domain.Resume {
	return domain.Resume{
		ID:                  m.ID,
		OwnerUserID:         m.OwnerUserID,
		ProfessionID:        m.ProfessionsID,
		ProfessionName:      m.ProfessionName,
		ProfessionGroupID:   m.ProfessionGroupID,
		ProfessionGroupName: m.ProfessionGroupName,
		CityID:              m.CityID,
		CityName:            m.CityName,
		Biography:           m.Biography,
		MediaURL:            m.MediaURL,
		Since:               sinceOf(m.Since),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func (r *ResumeRepo) take(ctx context.Context, where string, arg any) (*domain.Resume, error) {
	var row resumeRow
	err := r.query(ctx).Where(where, arg).Take(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := row.toDomain()
	return &d, nil
}

func (r *ResumeRepo) FindByID(ctx context.Context, id uint) (*domain.Resume, error) {
	return r.take(ctx, "r.id = ?", id)
}

func (r *ResumeRepo) FindByOwner(ctx context.Context, ownerID uint) (*domain.Resume, error) {
	return r.take(ctx, "r.owner_user_id = ?", ownerID)
}

// Create 插入简历并在同一事务内标记用户资料完整
func (r *ResumeRepo) Create(ctx context.Context, d *domain.Resume) error {
	m := resume.ResumeModel{
		OwnerUserID:   d.OwnerUserID,
		ProfessionsID: d.ProfessionID,
		CityID:        d.CityID,
		Biography:     d.Biography,
		MediaURL:      d.MediaURL,
		Since:         sinceString(d.Since),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			if isDupKey(err) {
				return domain.Duplicate("resume already exists for this user")
			}
			if isForeignKey(err) {
				return domain.Validation("profession, city or owner does not exist")
			}
			return err
		}
		return tx.Model(&user.UserModel{}).
			Where("id = ?", m.OwnerUserID).
			Update("profile_complete_status", true).Error
	})
	if err != nil {
		return err
	}
	d.ID, d.CreatedAt, d.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *ResumeRepo) updates(ctx context.Context, id uint, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&resume.ResumeModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return domain.Validation("profession or city does not exist")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("resume not found")
	}
	return nil
}

func (r *ResumeRepo) Update(ctx context.Context, d *domain.Resume) error {
	return r.updates(ctx, d.ID, map[string]any{
		"professions_id": d.ProfessionID,
		"city_id":        d.CityID,
		"biography":      d.Biography,
		"media_url":      d.MediaURL,
		"since":          sinceString(d.Since),
	})
}

func (r *ResumeRepo) UpdateSince(ctx context.Context, id uint, since time.Time) error {
	return r.updates(ctx, id, map[string]any{"since": domain.FormatDate(since)})
}

func (r *ResumeRepo) SetMediaURL(ctx context.Context, id uint, url string) error {
	return r.updates(ctx, id, map[string]any{"media_url": url})
}
