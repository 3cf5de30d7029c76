package repo

import (
	"context"

	"gorm.io/gorm"

	"kinopro/internal/domain"
)

// ProfessionalRepo 目录查询：简历 ⋈ 用户 ⋈ 职业 ⋈ 职业组 ⋈ 城市
type ProfessionalRepo struct{ db *gorm.DB }

func NewProfessionalRepo(db *gorm.DB) *ProfessionalRepo { return &ProfessionalRepo{db: db} }

type professionalRow struct {
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
	Since               *string
}

const professionalSelect = `r.id AS resume_id, u.id AS user_id, u.email, u.first_name, u.last_name,
	r.professions_id AS profession_id, COALESCE(p.name, '') AS profession_name,
	COALESCE(p.group_id, 0) AS profession_group_id, COALESCE(g.name, '') AS profession_group_name,
	r.city_id, COALESCE(c.city, '') AS city_name, r.biography, r.media_url, r.since`

func (r *ProfessionalRepo) Find(ctx context.Context, q domain.ProfessionalQuery) ([]domain.ProfessionalRow, error) {
	tx := r.db.WithContext(ctx).
		Table("resumes r").
		Select(professionalSelect).
		Joins("JOIN users u ON u.id = r.owner_user_id").
		Joins("LEFT JOIN professions p ON p.id = r.professions_id").
		Joins("LEFT JOIN profession_groups g ON g.id = p.group_id").
		Joins("LEFT JOIN cities c ON c.id = r.city_id")

	if q.ResumeID != nil {
		tx = tx.Where("r.id = ?", *q.ResumeID)
	}
	if q.ProfessionID != nil {
		tx = tx.Where("r.professions_id = ?", *q.ProfessionID)
	}
	if q.ProfessionGroupID != nil {
		tx = tx.Where("p.group_id = ?", *q.ProfessionGroupID)
	}
	if q.CityID != nil {
		tx = tx.Where("r.city_id = ?", *q.CityID)
	}
	if q.HasPhoto {
		tx = tx.Where("r.media_url IS NOT NULL AND r.media_url <> ''")
	}
	tx = tx.Order("r.id desc")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []professionalRow
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProfessionalRow, len(rows))
	for i, row := range rows {
		out[i] = domain.ProfessionalRow{
			ResumeID:            row.ResumeID,
			UserID:              row.UserID,
			Email:               row.Email,
			FirstName:           row.FirstName,
			LastName:            row.LastName,
			ProfessionID:        row.ProfessionID,
			ProfessionName:      row.ProfessionName,
			ProfessionGroupID:   row.ProfessionGroupID,
			ProfessionGroupName: row.ProfessionGroupName,
			CityID:              row.CityID,
			CityName:            row.CityName,
			Biography:           row.Biography,
			MediaURL:            row.MediaURL,
			Since:               sinceOf(row.Since),
		}
	}
	return out, nil
}
