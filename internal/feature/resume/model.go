package resume

import (
	"time"

	"gorm.io/datatypes"

	"kinopro/internal/feature/catalog"
	"kinopro/internal/feature/user"
)

type ResumeModel struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"`
	OwnerUserID   uint    `gorm:"uniqueIndex;not null"`
	ProfessionsID uint    `gorm:"column:professions_id;index;not null"`
	CityID        uint    `gorm:"index;not null"`
	Biography     string  `gorm:"type:text"`
	MediaURL      string  `gorm:"size:512"`
	Since         *string `gorm:"size:10"`
	// legacy column, kept for schema compatibility
	FeedbackIDs datatypes.JSON `gorm:"column:feedback_ids"`

	Owner      *user.UserModel          `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE"`
	Profession *catalog.ProfessionModel `gorm:"foreignKey:ProfessionsID"`
	City       *catalog.CityModel       `gorm:"foreignKey:CityID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ResumeModel) TableName() string { return "resumes" }
