package service

import (
	"testing"
	"time"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdServiceTest(t *testing.T) (AdService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	adRepo := repository.NewAdRepository(testDB)
	return NewAdService(adRepo), testDB
}

func uintPtr(v uint) *uint {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestAdService_SelectAd_StreetTargetedWins(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	generic := &model.Ad{Title: "Generic", Active: true, Priority: 100}
	testDB.Create(generic)

	targeted := &model.Ad{Title: "Targeted", Active: true, Priority: 1, StreetID: uintPtr(7)}
	testDB.Create(targeted)

	// Street-targeted ad wins even with lower priority.
	ad, err := adService.SelectAd(uintPtr(7))
	require.NoError(t, err)
	assert.Equal(t, targeted.ID, ad.ID)
}

func TestAdService_SelectAd_FallsBackToGeneric(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	generic := &model.Ad{Title: "Generic", Active: true}
	testDB.Create(generic)

	otherStreet := &model.Ad{Title: "Other street", Active: true, StreetID: uintPtr(3)}
	testDB.Create(otherStreet)

	ad, err := adService.SelectAd(uintPtr(7))
	require.NoError(t, err)
	assert.Equal(t, generic.ID, ad.ID)
}

func TestAdService_SelectAd_NoStreetGiven(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	targeted := &model.Ad{Title: "Targeted", Active: true, Priority: 50, StreetID: uintPtr(3)}
	testDB.Create(targeted)

	generic := &model.Ad{Title: "Generic", Active: true}
	testDB.Create(generic)

	// Without a street scope only generic ads are eligible.
	ad, err := adService.SelectAd(nil)
	require.NoError(t, err)
	assert.Equal(t, generic.ID, ad.ID)
}

func TestAdService_SelectAd_PriorityOrder(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	low := &model.Ad{Title: "Low", Active: true, Priority: 1}
	testDB.Create(low)

	high := &model.Ad{Title: "High", Active: true, Priority: 10}
	testDB.Create(high)

	ad, err := adService.SelectAd(nil)
	require.NoError(t, err)
	assert.Equal(t, high.ID, ad.ID)
}

func TestAdService_SelectAd_TieBreaksOnRecency(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	older := &model.Ad{Title: "Older", Active: true, Priority: 5}
	testDB.Create(older)
	testDB.Model(older).Update("updated_at", time.Now().Add(-time.Hour))

	newer := &model.Ad{Title: "Newer", Active: true, Priority: 5}
	testDB.Create(newer)

	ad, err := adService.SelectAd(nil)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, ad.ID)
}

func TestAdService_SelectAd_ExcludesInactive(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	inactive := &model.Ad{Title: "Inactive", Active: false, Priority: 100}
	testDB.Create(inactive)

	active := &model.Ad{Title: "Active", Active: true}
	testDB.Create(active)

	ad, err := adService.SelectAd(nil)
	require.NoError(t, err)
	assert.Equal(t, active.ID, ad.ID)
}

func TestAdService_SelectAd_ExcludesOutsideWindow(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	expired := &model.Ad{
		Title:    "Expired",
		Active:   true,
		Priority: 100,
		EndAt:    timePtr(time.Now().Add(-time.Hour)),
	}
	testDB.Create(expired)

	upcoming := &model.Ad{
		Title:    "Upcoming",
		Active:   true,
		Priority: 100,
		StartAt:  timePtr(time.Now().Add(time.Hour)),
	}
	testDB.Create(upcoming)

	current := &model.Ad{
		Title:   "Current",
		Active:  true,
		StartAt: timePtr(time.Now().Add(-time.Hour)),
		EndAt:   timePtr(time.Now().Add(time.Hour)),
	}
	testDB.Create(current)

	ad, err := adService.SelectAd(nil)
	require.NoError(t, err)
	assert.Equal(t, current.ID, ad.ID)
}

func TestAdService_SelectAd_NoneAvailable(t *testing.T) {
	adService, _ := setupAdServiceTest(t)

	_, err := adService.SelectAd(nil)
	assert.ErrorIs(t, err, ErrNoAdAvailable)
}

func TestAdService_SelectAd_NoneAvailableWithStreet(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	inactive := &model.Ad{Title: "Inactive", Active: false, StreetID: uintPtr(7)}
	testDB.Create(inactive)

	_, err := adService.SelectAd(uintPtr(7))
	assert.ErrorIs(t, err, ErrNoAdAvailable)
}

func TestAdService_DeactivateExpired(t *testing.T) {
	adService, testDB := setupAdServiceTest(t)

	expired := &model.Ad{
		Title:  "Expired",
		Active: true,
		EndAt:  timePtr(time.Now().Add(-time.Hour)),
	}
	testDB.Create(expired)

	current := &model.Ad{
		Title:  "Current",
		Active: true,
		EndAt:  timePtr(time.Now().Add(time.Hour)),
	}
	testDB.Create(current)

	unbounded := &model.Ad{Title: "Unbounded", Active: true}
	testDB.Create(unbounded)

	count, err := adService.DeactivateExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var reloaded model.Ad
	testDB.First(&reloaded, expired.ID)
	assert.False(t, reloaded.Active)

	testDB.First(&reloaded, current.ID)
	assert.True(t, reloaded.Active)
}

func TestAdService_PatchAd_NotFound(t *testing.T) {
	adService, _ := setupAdServiceTest(t)

	_, err := adService.PatchAd(9999, map[string]interface{}{"title": "New"})
	assert.ErrorIs(t, err, ErrAdNotFound)
}

func TestAdService_DeleteAd_NotFound(t *testing.T) {
	adService, _ := setupAdServiceTest(t)

	err := adService.DeleteAd(9999)
	assert.ErrorIs(t, err, ErrAdNotFound)
}
