package model

import "time"

type PopupAd struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	Active    bool       `gorm:"default:true" json:"active"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (PopupAd) TableName() string {
	return "popup_ads"
}
