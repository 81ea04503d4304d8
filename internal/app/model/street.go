package model

import "time"

type Street struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CityID      uint      `gorm:"not null;index" json:"city_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	City  *City  `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Works []Work `gorm:"foreignKey:StreetID" json:"-"`
}

func (Street) TableName() string {
	return "streets"
}
