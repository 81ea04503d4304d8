package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupQuizServiceTest(t *testing.T) (QuizService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	questionRepo := repository.NewQuizQuestionRepository(testDB)
	submissionRepo := repository.NewQuizSubmissionRepository(testDB)
	return NewQuizService(questionRepo, submissionRepo), testDB
}

func TestQuizService_SubmitQuiz(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	userID := "user-1"
	score := 7
	submission := &model.QuizSubmission{
		UserID:  &userID,
		Answers: `[1,3,2,4]`,
		Score:   &score,
	}

	err := quizService.SubmitQuiz(submission)
	require.NoError(t, err)
	assert.NotZero(t, submission.ID)

	submissions, err := quizService.ListSubmissions(10, 0)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, `[1,3,2,4]`, submissions[0].Answers)
}

func TestQuizService_SubmitQuiz_Anonymous(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	submission := &model.QuizSubmission{Answers: `[2]`}
	err := quizService.SubmitQuiz(submission)
	require.NoError(t, err)
	assert.Nil(t, submission.UserID)
}

const validQuestionsCSV = `city,question,option1,option2,option3,option4,answer
Porto Alegre,Which street?,A,B,C,D,2
Pelotas,Which author?,E,F,G,H,4
`

func TestQuizService_ImportQuestionsCSV_Success(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	imported, err := quizService.ImportQuestionsCSV(strings.NewReader(validQuestionsCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	questions, err := quizService.ListQuestions(10, 0)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Porto Alegre", questions[0].City)
	assert.Equal(t, 4, questions[1].Answer)
}

func TestQuizService_ImportQuestionsCSV_HeaderOrderIrrelevant(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	csv := `question,city,answer,option4,option3,option2,option1
Which street?,Porto Alegre,1,D,C,B,A
`
	imported, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	questions, _ := quizService.ListQuestions(10, 0)
	require.Len(t, questions, 1)
	assert.Equal(t, "A", questions[0].Option1)
	assert.Equal(t, "D", questions[0].Option4)
}

func TestQuizService_ImportQuestionsCSV_MissingColumn(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	csv := `city,question,option1,option2,option3,option4
Porto Alegre,Which street?,A,B,C,D
`
	_, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrInvalidCSV)
	assert.Contains(t, err.Error(), `missing column "answer"`)
}

func TestQuizService_ImportQuestionsCSV_AnswerOutOfRange(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	csv := `city,question,option1,option2,option3,option4,answer
Porto Alegre,Which street?,A,B,C,D,5
`
	_, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrInvalidCSV)
	assert.Contains(t, err.Error(), "answer must be between 1 and 4")
}

func TestQuizService_ImportQuestionsCSV_EmptyField(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	csv := `city,question,option1,option2,option3,option4,answer
Porto Alegre,,A,B,C,D,1
`
	_, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrInvalidCSV)
	assert.Contains(t, err.Error(), `empty "question"`)
}

func TestQuizService_ImportQuestionsCSV_BadRowInsertsNothing(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	// Row 2 is valid, row 3 is not; the import must be all-or-nothing.
	csv := `city,question,option1,option2,option3,option4,answer
Porto Alegre,Which street?,A,B,C,D,2
Pelotas,Which author?,E,F,G,H,9
`
	_, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	require.ErrorIs(t, err, ErrInvalidCSV)

	questions, err := quizService.ListQuestions(10, 0)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestQuizService_ImportQuestionsCSV_NoDataRows(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	csv := "city,question,option1,option2,option3,option4,answer\n"
	_, err := quizService.ImportQuestionsCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrInvalidCSV)
}

func TestQuizService_ExportQuestionsCSV(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	_, err := quizService.ImportQuestionsCSV(strings.NewReader(validQuestionsCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = quizService.ExportQuestionsCSV(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "city,question,option1,option2,option3,option4,answer", lines[0])
	assert.Contains(t, lines[1], "Porto Alegre")
}

func TestQuizService_ExportQuestionsXLSX(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	_, err := quizService.ImportQuestionsCSV(strings.NewReader(validQuestionsCSV))
	require.NoError(t, err)

	data, err := quizService.ExportQuestionsXLSX()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "city", rows[0][0])
	assert.Equal(t, "Porto Alegre", rows[1][0])
}

func TestQuizService_PatchQuestion_NotFound(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	_, err := quizService.PatchQuestion(9999, map[string]interface{}{"city": "New"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuizService_DeleteQuestion_NotFound(t *testing.T) {
	quizService, _ := setupQuizServiceTest(t)

	err := quizService.DeleteQuestion(9999)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
