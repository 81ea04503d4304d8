package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	adRepo := repository.NewAdRepository(testDB)
	adController := NewAdController(service.NewAdService(adRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ads", adController.SelectAd)
	router.GET("/admin/ads", adController.ListAds)
	router.POST("/admin/ads", adController.CreateAd)
	router.PUT("/admin/ads/:id", adController.UpdateAd)
	router.DELETE("/admin/ads/:id", adController.DeleteAd)

	return router, testDB
}

func TestAdController_SelectAd_Success(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	testDB.Create(&model.Ad{Title: "Generic", Active: true})

	w := performRequest(router, http.MethodGet, "/ads", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var ad model.Ad
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ad))
	assert.Equal(t, "Generic", ad.Title)
}

func TestAdController_SelectAd_StreetScoped(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	streetID := uint(7)
	testDB.Create(&model.Ad{Title: "Generic", Active: true, Priority: 100})
	testDB.Create(&model.Ad{Title: "Targeted", Active: true, StreetID: &streetID})

	w := performRequest(router, http.MethodGet, "/ads?ruaId=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var ad model.Ad
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ad))
	assert.Equal(t, "Targeted", ad.Title)
}

func TestAdController_SelectAd_NoneAvailable(t *testing.T) {
	router, _ := setupAdControllerTest(t)

	w := performRequest(router, http.MethodGet, "/ads", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No ad available", response["error"])
}

func TestAdController_SelectAd_InvalidStreetID(t *testing.T) {
	router, _ := setupAdControllerTest(t)

	w := performRequest(router, http.MethodGet, "/ads?ruaId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdController_CreateAd_Success(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/ads", gin.H{
		"title":     "New Ad",
		"priority":  5,
		"placement": "after_match",
		"keywords":  []string{"history", "street"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var ad model.Ad
	testDB.First(&ad)
	assert.Equal(t, "New Ad", ad.Title)
	assert.True(t, ad.Active)
	assert.Equal(t, model.PlacementAfterMatch, ad.Placement)
	assert.Equal(t, []string{"history", "street"}, []string(ad.Keywords))
}

func TestAdController_CreateAd_DefaultPlacement(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/ads", gin.H{
		"title": "New Ad",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var ad model.Ad
	testDB.First(&ad)
	assert.Equal(t, model.PlacementTop, ad.Placement)
}

func TestAdController_CreateAd_MissingTitle(t *testing.T) {
	router, _ := setupAdControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/ads", gin.H{
		"description": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdController_CreateAd_BadPlacement(t *testing.T) {
	router, _ := setupAdControllerTest(t)

	w := performRequest(router, http.MethodPost, "/admin/ads", gin.H{
		"title":     "New Ad",
		"placement": "sidebar",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdController_UpdateAd_Window(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	testDB.Create(&model.Ad{Title: "Ad", Active: true})

	endAt := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	w := performRequest(router, http.MethodPut, "/admin/ads/1", gin.H{
		"end_at": endAt,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var ad model.Ad
	testDB.First(&ad, 1)
	require.NotNil(t, ad.EndAt)
}

func TestAdController_UpdateAd_NotFound(t *testing.T) {
	router, _ := setupAdControllerTest(t)

	w := performRequest(router, http.MethodPut, "/admin/ads/9999", gin.H{
		"title": "New",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdController_DeleteAd_Success(t *testing.T) {
	router, testDB := setupAdControllerTest(t)

	testDB.Create(&model.Ad{Title: "Ad", Active: true})

	w := performRequest(router, http.MethodDelete, "/admin/ads/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Ad{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
