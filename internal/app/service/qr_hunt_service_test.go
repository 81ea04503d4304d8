package service

import (
	"testing"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupQrHuntServiceTest(t *testing.T) (QrHuntService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	codeRepo := repository.NewQrCodeRepository(testDB)
	scanRepo := repository.NewQrScanRepository(testDB)
	return NewQrHuntService(codeRepo, scanRepo), testDB
}

func createQrCode(t *testing.T, testDB *gorm.DB, code string, active bool, validStrings ...string) *model.QrCode {
	t.Helper()
	qrCode := &model.QrCode{
		Code:         code,
		StreetID:     1,
		Name:         "Plaque " + code,
		ValidStrings: pq.StringArray(validStrings),
		Active:       active,
	}
	require.NoError(t, testDB.Create(qrCode).Error)
	return qrCode
}

func TestQrHuntService_RecordScan_Success(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	code := createQrCode(t, testDB, "plaque-1", true, "plaque-1")
	createQrCode(t, testDB, "plaque-2", true, "plaque-2")

	scan, scanned, progress, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)
	assert.Equal(t, code.ID, scan.QrCodeID)
	assert.Equal(t, code.ID, scanned.ID)
	assert.Equal(t, 1, progress.Scanned)
	assert.Equal(t, 2, progress.Total)
	assert.Equal(t, 50, progress.Percentage)
	assert.Equal(t, []string{"plaque-1"}, progress.ScannedIDs)
}

func TestQrHuntService_RecordScan_ByValidString(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	code := createQrCode(t, testDB, "plaque-1", true, "https://example.com/qr/abc", "abc")

	_, scanned, _, err := qrHuntService.RecordScan("user-1", "abc")
	require.NoError(t, err)
	assert.Equal(t, code.ID, scanned.ID)
}

func TestQrHuntService_RecordScan_UnknownCode(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true, "plaque-1")

	_, _, _, err := qrHuntService.RecordScan("user-1", "nope")
	assert.ErrorIs(t, err, ErrInvalidQrCode)
}

func TestQrHuntService_RecordScan_InactiveCode(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", false, "plaque-1")

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	assert.ErrorIs(t, err, ErrInvalidQrCode)
}

func TestQrHuntService_RecordScan_Duplicate(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true, "plaque-1")

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)

	_, _, _, err = qrHuntService.RecordScan("user-1", "plaque-1")
	assert.ErrorIs(t, err, ErrDuplicateScan)

	// The duplicate attempt must not move the count.
	progress, err := qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Scanned)
}

func TestQrHuntService_RecordScan_DuplicateViaAlias(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true, "alias-1")

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)

	// Scanning the alias resolves to the same code and is still a duplicate.
	_, _, _, err = qrHuntService.RecordScan("user-1", "alias-1")
	assert.ErrorIs(t, err, ErrDuplicateScan)
}

func TestQrHuntService_RecordScan_SeparateUsers(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true)

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)

	_, _, _, err = qrHuntService.RecordScan("user-2", "plaque-1")
	assert.NoError(t, err)
}

func TestQrHuntService_GetProgress_Empty(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true)

	progress, err := qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Scanned)
	assert.Equal(t, 1, progress.Total)
	assert.Equal(t, 0, progress.Percentage)
	assert.Empty(t, progress.ScannedIDs)
}

func TestQrHuntService_GetProgress_NoActiveCodes(t *testing.T) {
	qrHuntService, _ := setupQrHuntServiceTest(t)

	// Zero active codes must not divide by zero.
	progress, err := qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Total)
	assert.Equal(t, 0, progress.Percentage)
}

func TestQrHuntService_GetProgress_Percentage(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true)
	createQrCode(t, testDB, "plaque-2", true)
	createQrCode(t, testDB, "plaque-3", true)

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)

	progress, err := qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Scanned)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 33, progress.Percentage)
}

func TestQrHuntService_GetProgress_DeactivatedCodeMovesTotal(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true)
	second := createQrCode(t, testDB, "plaque-2", true)

	_, _, _, err := qrHuntService.RecordScan("user-1", "plaque-1")
	require.NoError(t, err)

	progress, err := qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Percentage)

	// Total tracks the active set, so retiring a code changes every
	// user's percentage.
	require.NoError(t, testDB.Model(second).Update("active", false).Error)

	progress, err = qrHuntService.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Total)
	assert.Equal(t, 100, progress.Percentage)
}

func TestQrHuntService_ListActiveCodes(t *testing.T) {
	qrHuntService, testDB := setupQrHuntServiceTest(t)

	createQrCode(t, testDB, "plaque-1", true)
	createQrCode(t, testDB, "plaque-2", false)

	codes, err := qrHuntService.ListActiveCodes()
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "plaque-1", codes[0].Code)
}

func TestQrHuntService_PatchCode_NotFound(t *testing.T) {
	qrHuntService, _ := setupQrHuntServiceTest(t)

	_, err := qrHuntService.PatchCode(9999, map[string]interface{}{"name": "New"})
	assert.ErrorIs(t, err, ErrQrCodeNotFound)
}

func TestQrHuntService_DeleteCode_NotFound(t *testing.T) {
	qrHuntService, _ := setupQrHuntServiceTest(t)

	err := qrHuntService.DeleteCode(9999)
	assert.ErrorIs(t, err, ErrQrCodeNotFound)
}
