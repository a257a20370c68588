package model

type Payment struct {
	PaymentID   uint64  `gorm:"column:PaymentID;primaryKey;autoIncrement"`
	InvoiceID   uint64  `gorm:"column:InvoiceID;not null;index"`
	PaymentDate string  `gorm:"column:PaymentDate;type:text"`
	Amount      float64 `gorm:"column:Amount"`
}

func (Payment) TableName() string {
	return "Payments"
}
