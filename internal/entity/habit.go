package entity

type Habit struct {
	Base
	UserID   string `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID"`
	Title    string `gorm:"not null"`
	Color    string
	IsActive bool `gorm:"default:true"`
}
