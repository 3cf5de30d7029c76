package catalog

type CityModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	City string `gorm:"column:city;uniqueIndex;size:128;not null"`
}

func (CityModel) TableName() string { return "cities" }

type ProfessionGroupModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:128;not null"`
}

func (ProfessionGroupModel) TableName() string { return "profession_groups" }

type ProfessionModel struct {
	ID      uint                  `gorm:"primaryKey;autoIncrement"`
	Name    string                `gorm:"uniqueIndex;size:128;not null"`
	GroupID uint                  `gorm:"index;not null"`
	Group   *ProfessionGroupModel `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT"`
}

func (ProfessionModel) TableName() string { return "professions" }
