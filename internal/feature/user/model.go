package user

import (
	"time"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	FirstName    string `gorm:"size:64;not null;default:''"`
	LastName     string `gorm:"size:64;not null;default:''"`
	Role         string `gorm:"size:16;not null;default:user"`
	// 1 iff the user owns a resume
	ProfileCompleteStatus bool `gorm:"column:profile_complete_status;not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }
