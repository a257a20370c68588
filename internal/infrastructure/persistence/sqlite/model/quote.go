package model

type Quote struct {
	QuoteID         uint64   `gorm:"column:QuoteID;primaryKey;autoIncrement"`
	CustomerID      uint64   `gorm:"column:CustomerID;not null;index"`
	QuoteDate       string   `gorm:"column:QuoteDate;type:text;not null"`
	Status          string   `gorm:"column:Status;type:text;not null"`
	MaterialType    string   `gorm:"column:MaterialType;type:text"`
	FenceLength     float64  `gorm:"column:FenceLength"`
	HOAApproval     string   `gorm:"column:HOAApproval;type:text"`
	CityApproval    string   `gorm:"column:CityApproval;type:text"`
	PhotoPaths      string   `gorm:"column:PhotoPaths;type:text"`
	Address         string   `gorm:"column:Address;type:text"`
	Address2        *string  `gorm:"column:Address2;type:text"`
	ReferenceNumber *string  `gorm:"column:ReferenceNumber;type:text;uniqueIndex"`
	RejectionReason *string  `gorm:"column:RejectionReason;type:text"`
	EmailSent       bool     `gorm:"column:EmailSent;not null;default:0"`
	TotalAmount     *float64 `gorm:"column:TotalAmount"`
}

func (Quote) TableName() string {
	return "Quotes"
}
