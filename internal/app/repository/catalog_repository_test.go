package repository

import (
	"testing"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogRepositoryTest(t *testing.T) (CrudRepository[model.City], *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewCrudRepository[model.City](testDB, "city"), testDB
}

func TestCrudRepository_CreateAndFind(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	city := &model.City{Name: "Porto Alegre", State: "RS"}
	require.NoError(t, repo.Create(city))
	require.NotZero(t, city.ID)

	found, err := repo.FindByID(city.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porto Alegre", found.Name)
}

func TestCrudRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	_, err := repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCrudRepository_List_DefaultAndCap(t *testing.T) {
	repo, testDB := setupCatalogRepositoryTest(t)

	testDB.Create(&model.City{Name: "Porto Alegre"})
	testDB.Create(&model.City{Name: "Pelotas"})

	records, err := repo.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// An absurd limit is capped rather than rejected.
	records, err = repo.List(100000, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = repo.List(1, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pelotas", records[0].Name)
}

func TestCrudRepository_Patch(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	city := &model.City{Name: "Porto Alegre", State: "RS"}
	require.NoError(t, repo.Create(city))

	updated, err := repo.Patch(city.ID, map[string]interface{}{
		"description": "Capital",
	})
	require.NoError(t, err)
	assert.Equal(t, "Capital", updated.Description)
	assert.Equal(t, "Porto Alegre", updated.Name)
	assert.Equal(t, "RS", updated.State)
}

func TestCrudRepository_Patch_NotFound(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	_, err := repo.Patch(9999, map[string]interface{}{"name": "New"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCrudRepository_Delete(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	city := &model.City{Name: "Porto Alegre"}
	require.NoError(t, repo.Create(city))

	require.NoError(t, repo.Delete(city.ID))

	_, err := repo.FindByID(city.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCrudRepository_Delete_NotFound(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)

	err := repo.Delete(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
