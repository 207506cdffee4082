package model

// StopDesk is a fixed pickup location customers can collect orders from,
// the alternative to home delivery. Administrative data, referenced by
// orders but not owned by them.
type StopDesk struct {
	StopDeskID   uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null;type:varchar(200)"`
	Wilaya       string  `gorm:"not null;type:varchar(100);index"`
	City         string  `gorm:"not null;type:varchar(100)"`
	Address      string  `gorm:"type:text"`
	Phone        string  `gorm:"type:varchar(20)"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	WorkingHours string  `gorm:"type:varchar(100);default:'08:00 - 18:00'"`
	WorkingDays  string  `gorm:"type:varchar(100);default:'Sunday - Thursday'"`
	IsActive     bool    `gorm:"not null;default:true"`
	BaseModel
}
