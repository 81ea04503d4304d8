package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("quiz question not found")
	// ErrInvalidCSV wraps any import validation failure; the wrapped message
	// names the offending column or row.
	ErrInvalidCSV = errors.New("invalid csv")
)

// questionCSVHeader is the fixed column set for question import/export.
var questionCSVHeader = []string{"city", "question", "option1", "option2", "option3", "option4", "answer"}

type QuizService interface {
	SubmitQuiz(submission *model.QuizSubmission) error
	ListSubmissions(limit, offset int) ([]model.QuizSubmission, error)

	ListQuestions(limit, offset int) ([]model.QuizQuestion, error)
	CreateQuestion(question *model.QuizQuestion) error
	PatchQuestion(id uint, fields map[string]interface{}) (*model.QuizQuestion, error)
	DeleteQuestion(id uint) error

	// ImportQuestionsCSV validates the header and every row before touching
	// the store, then bulk-inserts. Returns the number of imported rows.
	ImportQuestionsCSV(r io.Reader) (int, error)
	ExportQuestionsCSV(w io.Writer) error
	ExportQuestionsXLSX() ([]byte, error)
}

type quizService struct {
	questionRepo   repository.QuizQuestionRepository
	submissionRepo repository.QuizSubmissionRepository
}

func NewQuizService(
	questionRepo repository.QuizQuestionRepository,
	submissionRepo repository.QuizSubmissionRepository,
) QuizService {
	return &quizService{
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *quizService) SubmitQuiz(submission *model.QuizSubmission) error {
	logger.Info("Storing quiz submission", map[string]interface{}{
		"user_id": submission.UserID,
		"score":   submission.Score,
	})
	return s.submissionRepo.Create(submission)
}

func (s *quizService) ListSubmissions(limit, offset int) ([]model.QuizSubmission, error) {
	return s.submissionRepo.List(limit, offset)
}

func (s *quizService) ListQuestions(limit, offset int) ([]model.QuizQuestion, error) {
	return s.questionRepo.List(limit, offset)
}

func (s *quizService) CreateQuestion(question *model.QuizQuestion) error {
	return s.questionRepo.Create(question)
}

func (s *quizService) PatchQuestion(id uint, fields map[string]interface{}) (*model.QuizQuestion, error) {
	question, err := s.questionRepo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *quizService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (s *quizService) ImportQuestionsCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: unable to read header", ErrInvalidCSV)
	}

	columns, err := mapCSVHeader(header)
	if err != nil {
		return 0, err
	}

	var questions []model.QuizQuestion
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return 0, fmt.Errorf("%w: row %d is malformed", ErrInvalidCSV, row)
		}

		question, err := parseQuestionRow(record, columns, row)
		if err != nil {
			return 0, err
		}
		questions = append(questions, *question)
	}

	if len(questions) == 0 {
		return 0, fmt.Errorf("%w: file has no data rows", ErrInvalidCSV)
	}

	if err := s.questionRepo.BulkCreate(questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// mapCSVHeader maps the fixed header set to column indexes, rejecting a
// missing column by name.
func mapCSVHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range questionCSVHeader {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, required)
		}
	}
	return columns, nil
}

func parseQuestionRow(record []string, columns map[string]int, row int) (*model.QuizQuestion, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	for _, name := range questionCSVHeader {
		if field(name) == "" {
			return nil, fmt.Errorf("%w: row %d has empty %q", ErrInvalidCSV, row, name)
		}
	}

	answer, err := strconv.Atoi(field("answer"))
	if err != nil || answer < 1 || answer > 4 {
		return nil, fmt.Errorf("%w: row %d answer must be between 1 and 4", ErrInvalidCSV, row)
	}

	return &model.QuizQuestion{
		City:     field("city"),
		Question: field("question"),
		Option1:  field("option1"),
		Option2:  field("option2"),
		Option3:  field("option3"),
		Option4:  field("option4"),
		Answer:   answer,
	}, nil
}

func (s *quizService) ExportQuestionsCSV(w io.Writer) error {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(questionCSVHeader); err != nil {
		return err
	}

	for _, q := range questions {
		record := []string{
			q.City, q.Question,
			q.Option1, q.Option2, q.Option3, q.Option4,
			strconv.Itoa(q.Answer),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *quizService) ExportQuestionsXLSX() ([]byte, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, name := range questionCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	for rowIdx, q := range questions {
		values := []interface{}{
			q.City, q.Question,
			q.Option1, q.Option2, q.Option3, q.Option4,
			q.Answer,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
