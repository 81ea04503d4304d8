package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupQuizControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	questionRepo := repository.NewQuizQuestionRepository(testDB)
	submissionRepo := repository.NewQuizSubmissionRepository(testDB)
	quizController := NewQuizController(service.NewQuizService(questionRepo, submissionRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/quiz", quizController.SubmitQuiz)
	router.GET("/admin/quiz", quizController.ListSubmissions)
	router.POST("/admin/questions", quizController.CreateQuestion)
	router.GET("/admin/questions", quizController.ListQuestions)
	router.POST("/admin/questions/csv", quizController.ImportQuestionsCSV)
	router.GET("/admin/questions/csv", quizController.ExportQuestionsCSV)
	router.GET("/admin/questions/xlsx", quizController.ExportQuestionsXLSX)

	return router, testDB
}

func TestQuizController_SubmitQuiz_Success(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	w := performRequest(router, http.MethodPost, "/quiz", gin.H{
		"userId":  "user-1",
		"answers": []int{1, 3, 2},
		"score":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var submission model.QuizSubmission
	testDB.First(&submission)
	assert.Equal(t, "[1,3,2]", submission.Answers)
	require.NotNil(t, submission.Score)
	assert.Equal(t, 2, *submission.Score)
}

func TestQuizController_SubmitQuiz_Anonymous(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	w := performRequest(router, http.MethodPost, "/quiz", gin.H{
		"answers": []int{4},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var submission model.QuizSubmission
	testDB.First(&submission)
	assert.Nil(t, submission.UserID)
}

func TestQuizController_SubmitQuiz_MissingAnswers(t *testing.T) {
	router, _ := setupQuizControllerTest(t)

	w := performRequest(router, http.MethodPost, "/quiz", gin.H{
		"userId": "user-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizController_CreateQuestion_Success(t *testing.T) {
	router, _ := setupQuizControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/questions", gin.H{
		"city":     "Porto Alegre",
		"question": "Which street?",
		"option1":  "A",
		"option2":  "B",
		"option3":  "C",
		"option4":  "D",
		"answer":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestQuizController_CreateQuestion_AnswerOutOfRange(t *testing.T) {
	router, _ := setupQuizControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/questions", gin.H{
		"city":     "Porto Alegre",
		"question": "Which street?",
		"option1":  "A",
		"option2":  "B",
		"option3":  "C",
		"option4":  "D",
		"answer":   5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func postCSV(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/questions/csv", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQuizController_ImportCSV_Success(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	csv := "city,question,option1,option2,option3,option4,answer\n" +
		"Porto Alegre,Which street?,A,B,C,D,2\n"
	w := postCSV(router, csv)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["imported"])

	var count int64
	testDB.Model(&model.QuizQuestion{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestQuizController_ImportCSV_MissingColumn(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	csv := "city,question,option1,option2,option3,option4\n" +
		"Porto Alegre,Which street?,A,B,C,D\n"
	w := postCSV(router, csv)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], `missing column "answer"`)

	var count int64
	testDB.Model(&model.QuizQuestion{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestQuizController_ExportCSV(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	testDB.Create(&model.QuizQuestion{
		City: "Porto Alegre", Question: "Which street?",
		Option1: "A", Option2: "B", Option3: "C", Option4: "D",
		Answer: 2,
	})

	w := performRequest(router, http.MethodGet, "/admin/questions/csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Porto Alegre")
}

func TestQuizController_ExportXLSX(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	testDB.Create(&model.QuizQuestion{
		City: "Porto Alegre", Question: "Which street?",
		Option1: "A", Option2: "B", Option3: "C", Option4: "D",
		Answer: 2,
	})

	w := performRequest(router, http.MethodGet, "/admin/questions/xlsx", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestQuizController_ListSubmissions(t *testing.T) {
	router, testDB := setupQuizControllerTest(t)

	testDB.Create(&model.QuizSubmission{Answers: `[1]`})
	testDB.Create(&model.QuizSubmission{Answers: `[2]`})

	w := performRequest(router, http.MethodGet, "/admin/quiz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []model.QuizSubmission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
}
