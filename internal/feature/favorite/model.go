package favorite

import (
	"time"

	"kinopro/internal/feature/user"
)

// ListModel is a favorites list; the table keeps its historical name.
type ListModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	OwnerUserID uint    `gorm:"index;not null"`

	Owner   *user.UserModel `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE"`
	Members []MemberModel   `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ListModel) TableName() string { return "participants" }

// MemberModel is one professional in a list. Order is id ascending.
type MemberModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	ListID         uint      `gorm:"uniqueIndex:idx_list_member,priority:1;not null"`
	ProfessionalID uint      `gorm:"uniqueIndex:idx_list_member,priority:2;index;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (MemberModel) TableName() string { return "participant_members" }
