package database

import (
	"gorm.io/gorm"

	"kinopro/internal/feature/catalog"
	"kinopro/internal/feature/favorite"
	"kinopro/internal/feature/resume"
	"kinopro/internal/feature/review"
	"kinopro/internal/feature/user"
)

// Models 按外键依赖顺序排列
func Models() []any {
	return []any{
		&user.UserModel{},
		&catalog.CityModel{},
		&catalog.ProfessionGroupModel{},
		&catalog.ProfessionModel{},
		&resume.ResumeModel{},
		&favorite.ListModel{},
		&favorite.MemberModel{},
		&review.ReviewModel{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
