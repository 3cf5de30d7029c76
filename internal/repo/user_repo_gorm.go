package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"kinopro/internal/domain"
	"kinopro/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func toUser(m user.UserModel) domain.User {
	return domain.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Role:            m.Role,
		ProfileComplete: m.ProfileCompleteStatus,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
	}
	if m.Role == "" {
		m.Role = domain.RoleUser
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return domain.Duplicate("user already exists")
		}
		return err
	}
	*u = toUser(m)
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := toUser(m)
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := toUser(m)
	return &u, nil
}

// List 按 email / 姓名模糊查询，最新在前
func (r *UserRepo) List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&user.UserModel{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ms []user.UserModel
	if err := tx.Offset(offset).Limit(limit).Order("id desc").Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	users := make([]domain.User, len(ms))
	for i, m := range ms {
		users[i] = toUser(m)
	}
	return users, total, nil
}

func (r *UserRepo) UpdateNames(ctx context.Context, id uint, first, last *string) error {
	fields := map[string]any{}
	if first != nil {
		fields["first_name"] = *first
	}
	if last != nil {
		fields["last_name"] = *last
	}
	res := r.db.WithContext(ctx).Model(&user.UserModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user not found")
	}
	return nil
}

// RecomputeProfileStatus 按是否存在简历重算所有用户的资料完整标记
func (r *UserRepo) RecomputeProfileStatus(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&user.UserModel{}).
		Update("profile_complete_status",
			gorm.Expr("EXISTS (SELECT 1 FROM resumes r WHERE r.owner_user_id = users.id)"))
	return res.RowsAffected, res.Error
}
