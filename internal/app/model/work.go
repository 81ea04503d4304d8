package model

import "time"

// Work is a story record shown on a street page.
type Work struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StreetID  uint      `gorm:"not null;index" json:"street_id"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Year      *int      `json:"year"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Street *Street `gorm:"foreignKey:StreetID" json:"street,omitempty"`
	Author *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Work) TableName() string {
	return "works"
}
