package model

import "time"

type Business struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StreetID    *uint     `gorm:"index" json:"street_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	LinkURL     string    `json:"link_url"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}
