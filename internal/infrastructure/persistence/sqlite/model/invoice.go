package model

// Invoice keeps the singular table name existing databases already use.
type Invoice struct {
	InvoiceID   uint64  `gorm:"column:InvoiceID;primaryKey;autoIncrement"`
	QuoteID     uint64  `gorm:"column:QuoteID;not null;index"`
	InvoiceDate string  `gorm:"column:InvoiceDate;type:text"`
	Amount      float64 `gorm:"column:Amount"`
}

func (Invoice) TableName() string {
	return "Invoice"
}
