package model

import (
	"time"

	"github.com/lib/pq"
)

// QrCode is a physical scavenger-hunt marker. Code is the human-chosen
// identifier printed on the plaque; ValidStrings are alternative payloads
// that also resolve to this code and must hold at least one non-empty entry
// while the code is active.
type QrCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Code         string         `gorm:"uniqueIndex;not null" json:"code"`
	StreetID     uint           `gorm:"not null;index" json:"street_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	ValidStrings pq.StringArray `gorm:"type:text[]" json:"valid_strings"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (QrCode) TableName() string {
	return "qr_codes"
}

// Matches reports whether token identifies this code, either by the code
// itself or by one of the valid strings.
func (q *QrCode) Matches(token string) bool {
	if token == "" {
		return false
	}
	if q.Code == token {
		return true
	}
	for _, s := range q.ValidStrings {
		if s != "" && s == token {
			return true
		}
	}
	return false
}

// UserQrScan records that a user found a code. The unique index on
// (user_id, qr_code_id) makes re-scans a constraint violation rather than a
// second row.
type UserQrScan struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_qr_scan" json:"user_id"`
	QrCodeID  uint      `gorm:"not null;uniqueIndex:idx_user_qr_scan" json:"qr_code_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	QrCode *QrCode `gorm:"foreignKey:QrCodeID" json:"qr_code,omitempty"`
}

func (UserQrScan) TableName() string {
	return "user_qr_scans"
}
