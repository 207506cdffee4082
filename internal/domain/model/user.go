package model

type User struct {
	UserID         uint    `gorm:"primaryKey"`
	Username       string  `gorm:"unique;not null;type:varchar(50)"`
	FirstName      string  `gorm:"type:varchar(100)"`
	LastName       string  `gorm:"type:varchar(100)"`
	Phone          string  `gorm:"not null;type:varchar(20)"`
	Address        string  `gorm:"type:varchar(255)"`
	HashedPassword string  `gorm:"not null;type:varchar(255)"`
	PhoneVerified  bool    `gorm:"not null;default:false"`
	Orders         []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BaseModel
}
