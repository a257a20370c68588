package model

type Customer struct {
	CustomerID  uint64 `gorm:"column:CustomerID;primaryKey;autoIncrement"`
	Email       string `gorm:"column:Email;type:text;not null;uniqueIndex"`
	FirstName   string `gorm:"column:FirstName;type:text;not null"`
	LastName    string `gorm:"column:LastName;type:text;not null"`
	PhoneNumber string `gorm:"column:PhoneNumber;type:text"`
	Address     string `gorm:"column:Address;type:text"`
	City        string `gorm:"column:City;type:text"`
	State       string `gorm:"column:State;type:text"`
	ZipCode     string `gorm:"column:ZipCode;type:text"`
}

func (Customer) TableName() string {
	return "Customers"
}
