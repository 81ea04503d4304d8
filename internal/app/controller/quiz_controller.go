package controller

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/errors"
	"github.com/historin/historin-backend/internal/middleware"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{
		quizService: quizService,
	}
}

type SubmitQuizRequest struct {
	UserID  *string         `json:"userId"`
	Answers json.RawMessage `json:"answers" binding:"required"`
	Score   *int            `json:"score"`
	Meta    json.RawMessage `json:"meta"`
}

// SubmitQuiz stores a completed quiz run
// POST /api/quiz
func (ctrl *QuizController) SubmitQuiz(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid quiz submission", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	submission := &model.QuizSubmission{
		UserID:  req.UserID,
		Answers: string(req.Answers),
		Score:   req.Score,
	}
	if len(req.Meta) > 0 {
		submission.Meta = string(req.Meta)
	}

	if err := ctrl.quizService.SubmitQuiz(submission); err != nil {
		log.Error("Failed to store quiz submission", err)
		errors.InternalError(c, "Failed to store submission")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": submission})
}

// ListSubmissions lists stored quiz runs for the admin panel
// GET /api/admin/quiz?limit=&offset=
func (ctrl *QuizController) ListSubmissions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	submissions, err := ctrl.quizService.ListSubmissions(limit, offset)
	if err != nil {
		log.Error("Failed to list quiz submissions", err)
		errors.InternalError(c, "Failed to list submissions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submissions})
}

type CreateQuestionRequest struct {
	City     string `json:"city" binding:"required"`
	Question string `json:"question" binding:"required"`
	Option1  string `json:"option1" binding:"required"`
	Option2  string `json:"option2" binding:"required"`
	Option3  string `json:"option3" binding:"required"`
	Option4  string `json:"option4" binding:"required"`
	Answer   int    `json:"answer" binding:"required,gte=1,lte=4"`
}

// CreateQuestion creates a quiz question
// POST /api/admin/questions
func (ctrl *QuizController) CreateQuestion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid question creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	question := &model.QuizQuestion{
		City:     req.City,
		Question: req.Question,
		Option1:  req.Option1,
		Option2:  req.Option2,
		Option3:  req.Option3,
		Option4:  req.Option4,
		Answer:   req.Answer,
	}

	if err := ctrl.quizService.CreateQuestion(question); err != nil {
		log.Error("Failed to create question", err)
		errors.InternalError(c, "Failed to create question")
		return
	}

	log.Info("Quiz question created", map[string]interface{}{
		"question_id": question.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"data": question})
}

// ListQuestions lists quiz questions for the admin panel
// GET /api/admin/questions?limit=&offset=
func (ctrl *QuizController) ListQuestions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)
	questions, err := ctrl.quizService.ListQuestions(limit, offset)
	if err != nil {
		log.Error("Failed to list questions", err)
		errors.InternalError(c, "Failed to list questions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": questions})
}

type UpdateQuestionRequest struct {
	City     *string `json:"city"`
	Question *string `json:"question"`
	Option1  *string `json:"option1"`
	Option2  *string `json:"option2"`
	Option3  *string `json:"option3"`
	Option4  *string `json:"option4"`
	Answer   *int    `json:"answer" binding:"omitempty,gte=1,lte=4"`
}

// UpdateQuestion merges the fields present into a partial update
// PUT|PATCH /api/admin/questions/:id
func (ctrl *QuizController) UpdateQuestion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid question update request", map[string]interface{}{
			"question_id": id,
			"error":       err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, bindingErrorMessage(err))
		return
	}

	fields := map[string]interface{}{}
	patchRequiredString(fields, "city", req.City)
	patchRequiredString(fields, "question", req.Question)
	patchRequiredString(fields, "option1", req.Option1)
	patchRequiredString(fields, "option2", req.Option2)
	patchRequiredString(fields, "option3", req.Option3)
	patchRequiredString(fields, "option4", req.Option4)
	patchValue(fields, "answer", req.Answer)

	if len(fields) == 0 {
		errors.BadRequest(c, errors.ValidationEmptyPatch, "No valid fields to update")
		return
	}

	question, err := ctrl.quizService.PatchQuestion(id, fields)
	if err != nil {
		if stderrors.Is(err, service.ErrQuestionNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Question not found")
			return
		}
		log.Error("Failed to update question", err, map[string]interface{}{
			"question_id": id,
		})
		errors.InternalError(c, "Failed to update question")
		return
	}

	log.Info("Quiz question updated", map[string]interface{}{
		"question_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"data": question})
}

// DeleteQuestion removes a quiz question
// DELETE /api/admin/questions/:id
func (ctrl *QuizController) DeleteQuestion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseID(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid id")
		return
	}

	if err := ctrl.quizService.DeleteQuestion(id); err != nil {
		if stderrors.Is(err, service.ErrQuestionNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Question not found")
			return
		}
		log.Error("Failed to delete question", err, map[string]interface{}{
			"question_id": id,
		})
		errors.InternalError(c, "Failed to delete question")
		return
	}

	log.Info("Quiz question deleted", map[string]interface{}{
		"question_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ImportQuestionsCSV bulk-loads questions from an uploaded CSV. The file is
// taken from the "file" multipart field, or the raw body when the request is
// not multipart. Nothing is inserted unless every row validates.
// POST /api/admin/questions/csv
func (ctrl *QuizController) ImportQuestionsCSV(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reader := c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		opened, err := file.Open()
		if err != nil {
			log.Error("Failed to open uploaded csv", err)
			errors.InternalError(c, "Failed to read upload")
			return
		}
		defer opened.Close()
		reader = opened
	}

	imported, err := ctrl.quizService.ImportQuestionsCSV(reader)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidCSV) {
			log.Warn("CSV import rejected", map[string]interface{}{
				"error": err.Error(),
			})
			errors.BadRequest(c, errors.QuizInvalidCSV, err.Error())
			return
		}
		log.Error("Failed to import questions", err)
		errors.InternalError(c, "Failed to import questions")
		return
	}

	log.Info("Quiz questions imported", map[string]interface{}{
		"imported": imported,
	})
	c.JSON(http.StatusCreated, gin.H{"imported": imported})
}

// ExportQuestionsCSV streams every question as CSV
// GET /api/admin/questions/csv
func (ctrl *QuizController) ExportQuestionsCSV(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="questions-%s.csv"`, time.Now().Format("2006-01-02")))

	if err := ctrl.quizService.ExportQuestionsCSV(c.Writer); err != nil {
		log.Error("Failed to export questions csv", err)
		errors.InternalError(c, "Failed to export questions")
	}
}

// ExportQuestionsXLSX returns every question as a spreadsheet
// GET /api/admin/questions/xlsx
func (ctrl *QuizController) ExportQuestionsXLSX(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.quizService.ExportQuestionsXLSX()
	if err != nil {
		log.Error("Failed to export questions xlsx", err)
		errors.InternalError(c, "Failed to export questions")
		return
	}

	filename := fmt.Sprintf(`attachment; filename="questions-%s.xlsx"`, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
