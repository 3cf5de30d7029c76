package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kinopro/internal/domain"
	"kinopro/internal/feature/favorite"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func toFavorite(m favorite.ListModel, ids []uint) domain.FavoriteList {
	if ids == nil {
		ids = []uint{}
	}
	return domain.FavoriteList{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ListOfIDs:   ids,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// members 按插入顺序返回各列表成员
func members(db *gorm.DB, listIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(listIDs))
	if len(listIDs) == 0 {
		return out, nil
	}
	var ms []favorite.MemberModel
	if err := db.Where("list_id IN ?", listIDs).Order("id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.ListID] = append(out[m.ListID], m.ProfessionalID)
	}
	return out, nil
}

func insertMembers(tx *gorm.DB, listID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	ms := make([]favorite.MemberModel, len(ids))
	for i, id := range ids {
		ms[i] = favorite.MemberModel{ListID: listID, ProfessionalID: id}
	}
	return tx.Create(&ms).Error
}

func touch(tx *gorm.DB, id uint) *gorm.DB {
	return tx.Model(&favorite.ListModel{}).Where("id = ?", id).Update("updated_at", time.Now())
}

func (r *FavoriteRepo) ListByOwner(ctx context.Context, ownerID uint) ([]domain.FavoriteList, error) {
	db := r.db.WithContext(ctx)
	var ms []favorite.ListModel
	if err := db.Where("owner_user_id = ?", ownerID).Order("created_at desc, id desc").Find(&ms).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	byList, err := members(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FavoriteList, len(ms))
	for i, m := range ms {
		out[i] = toFavorite(m, byList[m.ID])
	}
	return out, nil
}

func (r *FavoriteRepo) FindByID(ctx context.Context, id uint) (*domain.FavoriteList, error) {
	db := r.db.WithContext(ctx)
	var m favorite.ListModel
	err := db.First(&m, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	byList, err := members(db, []uint{id})
	if err != nil {
		return nil, err
	}
	l := toFavorite(m, byList[id])
	return &l, nil
}

func (r *FavoriteRepo) Create(ctx context.Context, l *domain.FavoriteList) error {
	m := favorite.ListModel{Title: l.Title, Description: l.Description, OwnerUserID: l.OwnerUserID}
	ids := domain.Dedup(l.ListOfIDs)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return insertMembers(tx, m.ID, ids)
	})
	if err != nil {
		return err
	}
	*l = toFavorite(m, ids)
	return nil
}

// Update 在事务内修改标题/描述，并在提供 ListOfIDs 时整体替换成员
func (r *FavoriteRepo) Update(ctx context.Context, id uint, p domain.FavoritePatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{"updated_at": time.Now()}
		if p.Title != nil {
			fields["title"] = *p.Title
		}
		if p.Description != nil {
			fields["description"] = *p.Description
		}
		res := tx.Model(&favorite.ListModel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("list not found")
		}
		if !p.ListOfIDs.Set {
			return nil
		}
		if err := tx.Where("list_id = ?", id).Delete(&favorite.MemberModel{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, id, domain.Dedup(p.ListOfIDs.IDs))
	})
}

func (r *FavoriteRepo) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&favorite.MemberModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&favorite.ListModel{}, id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// AddMember 唯一键 (list_id, professional_id) 冲突时忽略
func (r *FavoriteRepo) AddMember(ctx context.Context, id, professionalID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := favorite.MemberModel{ListID: id, ProfessionalID: professionalID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
			return err
		}
		return touch(tx, id).Error
	})
}

func (r *FavoriteRepo) RemoveMember(ctx context.Context, id, professionalID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ? AND professional_id = ?", id, professionalID).
			Delete(&favorite.MemberModel{}).Error; err != nil {
			return err
		}
		return touch(tx, id).Error
	})
}

// ListIDsContaining 返回 owner 名下包含该专业人士的列表 id
func (r *FavoriteRepo) ListIDsContaining(ctx context.Context, ownerID, professionalID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("participants p").
		Joins("JOIN participant_members m ON m.list_id = p.id").
		Where("p.owner_user_id = ? AND m.professional_id = ?", ownerID, professionalID).
		Order("p.id asc").
		Pluck("p.id", &ids).Error
	return ids, err
}

func (r *FavoriteRepo) MemberIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("participant_members m").
		Joins("JOIN participants p ON p.id = m.list_id").
		Where("p.owner_user_id = ?", ownerID).
		Distinct("m.professional_id").
		Pluck("m.professional_id", &ids).Error
	return ids, err
}
