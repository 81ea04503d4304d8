package model

import (
	"time"

	"github.com/lib/pq"
)

type AdPlacement string

const (
	PlacementTop        AdPlacement = "top"
	PlacementAfterMatch AdPlacement = "after_match"
)

// Ad is an advertisement placed on the public site. It is eligible for
// display only while Active is true and now falls within [StartAt, EndAt];
// a nil bound means unbounded on that side.
type Ad struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Active      bool           `gorm:"default:true;index" json:"active"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	LinkURL     string         `json:"link_url"`
	LinkText    string         `json:"link_text"`
	Tag         string         `json:"tag"`
	Priority    int            `gorm:"default:0" json:"priority"`
	Placement   AdPlacement    `gorm:"type:varchar(20);default:'top'" json:"placement"`
	Keywords    pq.StringArray `gorm:"type:text[]" json:"keywords"`
	StreetID    *uint          `gorm:"index" json:"street_id"`
	WorkID      *uint          `json:"work_id"`
	BusinessID  *uint          `json:"business_id"`
	StartAt     *time.Time     `json:"start_at"`
	EndAt       *time.Time     `json:"end_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Ad) TableName() string {
	return "ads"
}

// InWindow reports whether the ad's display window contains t.
func (a *Ad) InWindow(t time.Time) bool {
	if a.StartAt != nil && t.Before(*a.StartAt) {
		return false
	}
	if a.EndAt != nil && t.After(*a.EndAt) {
		return false
	}
	return true
}
