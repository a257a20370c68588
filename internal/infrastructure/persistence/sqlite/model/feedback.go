package model

type Feedback struct {
	FeedbackID uint64 `gorm:"column:FeedbackID;primaryKey;autoIncrement"`
	CustomerID uint64 `gorm:"column:CustomerID;not null;index"`
	Rating     int    `gorm:"column:Rating"`
	Comments   string `gorm:"column:Comments;type:text"`
}

func (Feedback) TableName() string {
	return "Feedback"
}
