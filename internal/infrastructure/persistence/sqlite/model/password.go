package model

// Password is the one-to-one credential record per customer. The engine only
// ever creates and cascades these rows; verification lives elsewhere.
type Password struct {
	PasswordID   uint64 `gorm:"column:PasswordID;primaryKey;autoIncrement"`
	CustomerID   uint64 `gorm:"column:CustomerID;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:PasswordHash;type:text;not null"`
}

func (Password) TableName() string {
	return "Passwords"
}
