package repositories_test

import (
	"path/filepath"
	"testing"

	"comercio/internal/database"
	"comercio/internal/models"
	"comercio/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *database.Manager {
	t.Helper()
	store, err := database.NewSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	return store
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMProductRepository(setupStore(t))

	shirt := &models.Product{Name: "Shirt", Price: 59.9, Size: models.SizeM, Stock: 10}
	jacket := &models.Product{Name: "Jacket", Price: 199, Size: models.SizeGG, Stock: 0}
	require.NoError(t, repo.Create(shirt))
	require.NoError(t, repo.Create(jacket))
	assert.NotZero(t, shirt.ID)
	assert.NotEqual(t, shirt.ID, jacket.ID)

	got, err := repo.GetByID(shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", got.Name)
	assert.Equal(t, 59.9, got.Price)
	assert.Equal(t, models.SizeM, got.Size)
	assert.Equal(t, 10, got.Stock)
	assert.False(t, got.CreatedAt.IsZero())

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Jacket", all[0].Name, "ordered by name")

	found, err := repo.Search("SHI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, shirt.ID, found[0].ID)

	require.NoError(t, repo.Update(shirt.ID, map[string]interface{}{"stock": 0}))
	got, err = repo.GetByID(shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, 59.9, got.Price)

	require.NoError(t, repo.Delete(shirt.ID))
	_, err = repo.GetByID(shirt.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(setupStore(t))

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Update(42, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Delete(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Contains(t, err.Error(), "not found for deletion")
}

func TestGORMCustomerRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMCustomerRepository(setupStore(t))

	first := &models.Customer{Name: "Ana", Email: "ana@example.com", Phone: "1111"}
	require.NoError(t, repo.Create(first))

	err := repo.Create(&models.Customer{Name: "Other", Email: "ana@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	second := &models.Customer{Name: "Bruno", Email: "bruno@example.com"}
	require.NoError(t, repo.Create(second))
	err = repo.Update(second.ID, map[string]interface{}{"email": "ana@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	got, err := repo.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "1111", got.Phone)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGORMCustomerRepository_Search(t *testing.T) {
	repo := repositories.NewGORMCustomerRepository(setupStore(t))
	require.NoError(t, repo.Create(&models.Customer{Name: "Carla", Email: "carla@shop.com"}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Daniel", Email: "dan@mail.com"}))

	byName, err := repo.Search("carl")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byEmail, err := repo.Search("mail.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Daniel", byEmail[0].Name)

	none, err := repo.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMSupplierRepository_SearchAndDuplicate(t *testing.T) {
	repo := repositories.NewGORMSupplierRepository(setupStore(t))

	acme := &models.Supplier{Name: "Acme Textiles", TaxID: "12345678000199", Category: "Fabric"}
	require.NoError(t, repo.Create(acme))
	require.NoError(t, repo.Create(&models.Supplier{Name: "Buttons Co", TaxID: "98765432000111", Category: "Haberdashery"}))

	err := repo.Create(&models.Supplier{Name: "Copy", TaxID: "12345678000199"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	byTaxID, err := repo.Search("12.345.678")
	require.NoError(t, err)
	require.Len(t, byTaxID, 1)
	assert.Equal(t, acme.ID, byTaxID[0].ID)

	byCategory, err := repo.Search("haber")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Buttons Co", byCategory[0].Name)

	// A term without digits must not match every tax id.
	none, err := repo.Search("nothing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
