package model

type Project struct {
	ProjectID        uint64 `gorm:"column:ProjectID;primaryKey;autoIncrement"`
	QuoteID          uint64 `gorm:"column:QuoteID;not null;uniqueIndex"`
	ProjectStartDate string `gorm:"column:ProjectStartDate;type:text"`
	ProjectEndDate   string `gorm:"column:ProjectEndDate;type:text"`
	Status           string `gorm:"column:Status;type:text;not null"`
}

func (Project) TableName() string {
	return "Projects"
}
