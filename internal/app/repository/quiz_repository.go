package repository

import (
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

type QuizQuestionRepository interface {
	CrudRepository[model.QuizQuestion]
	FindAll() ([]model.QuizQuestion, error)
	// BulkCreate inserts all questions in one transaction; either every row
	// lands or none does.
	BulkCreate(questions []model.QuizQuestion) error
}

type quizQuestionRepository struct {
	CrudRepository[model.QuizQuestion]
	db *gorm.DB
}

func NewQuizQuestionRepository(db *gorm.DB) QuizQuestionRepository {
	return &quizQuestionRepository{
		CrudRepository: NewCrudRepository[model.QuizQuestion](db, "quiz_question"),
		db:             db,
	}
}

func (r *quizQuestionRepository) FindAll() ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := r.db.Order("id ASC").Find(&questions).Error; err != nil {
		logger.Error("Failed to list quiz questions", err)
		return nil, err
	}
	return questions, nil
}

func (r *quizQuestionRepository) BulkCreate(questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
	if err != nil {
		logger.Error("Failed to bulk create quiz questions", err, map[string]interface{}{
			"count": len(questions),
		})
		return err
	}

	logger.Info("Quiz questions imported", map[string]interface{}{
		"count": len(questions),
	})
	return nil
}

type QuizSubmissionRepository interface {
	Create(submission *model.QuizSubmission) error
	List(limit, offset int) ([]model.QuizSubmission, error)
}

type quizSubmissionRepository struct {
	db *gorm.DB
}

func NewQuizSubmissionRepository(db *gorm.DB) QuizSubmissionRepository {
	return &quizSubmissionRepository{db: db}
}

func (r *quizSubmissionRepository) Create(submission *model.QuizSubmission) error {
	if err := r.db.Create(submission).Error; err != nil {
		logger.Error("Failed to create quiz submission", err)
		return err
	}
	logger.Debug("Quiz submission created", map[string]interface{}{
		"submission_id": submission.ID,
	})
	return nil
}

func (r *quizSubmissionRepository) List(limit, offset int) ([]model.QuizSubmission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var submissions []model.QuizSubmission
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error
	if err != nil {
		logger.Error("Failed to list quiz submissions", err)
		return nil, err
	}
	return submissions, nil
}
