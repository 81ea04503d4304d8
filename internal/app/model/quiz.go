package model

import "time"

type QuizQuestion struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	City      string    `gorm:"not null" json:"city"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Option1   string    `gorm:"not null" json:"option1"`
	Option2   string    `gorm:"not null" json:"option2"`
	Option3   string    `gorm:"not null" json:"option3"`
	Option4   string    `gorm:"not null" json:"option4"`
	Answer    int       `gorm:"not null" json:"answer"` // 1..4
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizSubmission stores one completed quiz run. Answers and Meta hold the
// raw JSON sent by the client.
type QuizSubmission struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    *string   `gorm:"type:varchar(64);index" json:"user_id"`
	Answers   string    `gorm:"type:text;not null" json:"answers"`
	Score     *int      `json:"score"`
	Meta      string    `gorm:"type:text" json:"meta"`
	CreatedAt time.Time `json:"created_at"`
}

func (QuizSubmission) TableName() string {
	return "quiz"
}
