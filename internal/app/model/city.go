package model

import "time"

type City struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	State       string    `gorm:"type:varchar(100)" json:"state"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Streets []Street `gorm:"foreignKey:CityID" json:"-"`
}

func (City) TableName() string {
	return "cities"
}
