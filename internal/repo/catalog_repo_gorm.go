package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kinopro/internal/domain"
	"kinopro/internal/feature/catalog"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Cities(ctx context.Context) ([]domain.City, error) {
	var ms []catalog.CityModel
	if err := r.db.WithContext(ctx).Order("city asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.City, len(ms))
	for i, m := range ms {
		out[i] = domain.City{ID: m.ID, Name: m.City}
	}
	return out, nil
}

func (r *CatalogRepo) ProfessionGroups(ctx context.Context) ([]domain.ProfessionGroup, error) {
	var ms []catalog.ProfessionGroupModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ProfessionGroup, len(ms))
	for i, m := range ms {
		out[i] = domain.ProfessionGroup{ID: m.ID, Name: m.Name}
	}
	return out, nil
}

// Professions groupID 为 nil 时返回全部
func (r *CatalogRepo) Professions(ctx context.Context, groupID *uint) ([]domain.Profession, error) {
	tx := r.db.WithContext(ctx).Order("name asc")
	if groupID != nil {
		tx = tx.Where("group_id = ?", *groupID)
	}
	var ms []catalog.ProfessionModel
	if err := tx.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Profession, len(ms))
	for i, m := range ms {
		out[i] = domain.Profession{ID: m.ID, Name: m.Name, GroupID: m.GroupID}
	}
	return out, nil
}

func (r *CatalogRepo) exists(ctx context.Context, model any, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CatalogRepo) CityExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &catalog.CityModel{}, id)
}

func (r *CatalogRepo) ProfessionExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &catalog.ProfessionModel{}, id)
}

// Seed 幂等写入参考数据，已存在的名称跳过
func (r *CatalogRepo) Seed(ctx context.Context, t domain.Taxonomy) (domain.SeedResult, error) {
	var res domain.SeedResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ignore := func() *gorm.DB { return tx.Clauses(clause.OnConflict{DoNothing: true}) }

		if len(t.Cities) > 0 {
			cities := make([]catalog.CityModel, len(t.Cities))
			for i, c := range t.Cities {
				cities[i] = catalog.CityModel{City: c}
			}
			q := ignore().Create(&cities)
			if q.Error != nil {
				return q.Error
			}
			res.Cities = q.RowsAffected
		}

		if len(t.Groups) > 0 {
			groups := make([]catalog.ProfessionGroupModel, len(t.Groups))
			for i, g := range t.Groups {
				groups[i] = catalog.ProfessionGroupModel{Name: g}
			}
			q := ignore().Create(&groups)
			if q.Error != nil {
				return q.Error
			}
			res.Groups = q.RowsAffected
		}

		if len(t.Professions) == 0 {
			return nil
		}
		var all []catalog.ProfessionGroupModel
		if err := tx.Find(&all).Error; err != nil {
			return err
		}
		groupIDs := make(map[string]uint, len(all))
		for _, g := range all {
			groupIDs[g.Name] = g.ID
		}
		profs := make([]catalog.ProfessionModel, 0, len(t.Professions))
		for _, p := range t.Professions {
			gid, ok := groupIDs[p.Group]
			if !ok {
				return domain.Validation("profession %q refers to unknown group %q", p.Name, p.Group)
			}
			profs = append(profs, catalog.ProfessionModel{Name: p.Name, GroupID: gid})
		}
		q := ignore().Create(&profs)
		if q.Error != nil {
			return q.Error
		}
		res.Professions = q.RowsAffected
		return nil
	})
	return res, err
}
