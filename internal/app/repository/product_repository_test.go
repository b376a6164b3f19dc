package repository

import (
	"testing"
	"time"

	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	category := &model.Category{Name: "Serum"}
	require.NoError(t, NewCategoryRepository(testDB).Create(category))

	return testDB, NewProductRepository(testDB), category
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:        "Vitamin C Serum",
		Price:       25.5,
		Description: "Brightening serum",
		Sizes:       model.StringList{"30ml", "50ml"},
		Images:      model.StringList{"https://cdn.example.com/a.jpg"},
		CategoryID:  category.ID,
	}

	err := repo.Create(product)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"30ml", "50ml"}, found.Sizes)
	assert.Empty(t, found.Highlights)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Serum", found.Category.Name)
}

func TestProductRepository_Create_UnknownCategory(t *testing.T) {
	testDB, repo, _ := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.Create(&model.Product{Name: "Orphan", CategoryID: 9999})
	assert.Error(t, err)
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo, serum := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	toner := &model.Category{Name: "Toner"}
	require.NoError(t, NewCategoryRepository(testDB).Create(toner))

	base := time.Now().Add(-time.Hour)
	products := []model.Product{
		{Name: "Night Serum", Price: 30, CategoryID: serum.ID, IsTopSeller: true, CreatedAt: base},
		{Name: "Day Serum", Price: 20, CategoryID: serum.ID, CreatedAt: base.Add(time.Minute)},
		{Name: "Rose Toner", Price: 10, CategoryID: toner.ID, IsTopSeller: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{name: "All newest first", filter: ProductFilter{}, want: []string{"Rose Toner", "Day Serum", "Night Serum"}},
		{name: "By category", filter: ProductFilter{CategoryID: &serum.ID}, want: []string{"Day Serum", "Night Serum"}},
		{name: "Top sellers", filter: ProductFilter{TopSellerOnly: true}, want: []string{"Rose Toner", "Night Serum"}},
		{name: "Search", filter: ProductFilter{Search: "Serum"}, want: []string{"Day Serum", "Night Serum"}},
		{name: "Search percent is literal", filter: ProductFilter{Search: "%"}, want: []string{}},
		{name: "Search underscore is literal", filter: ProductFilter{Search: "Day_Serum"}, want: []string{}},
		{name: "Price ascending", filter: ProductFilter{SortBy: ProductSortPrice, SortAscending: true}, want: []string{"Rose Toner", "Day Serum", "Night Serum"}},
		{name: "Limit", filter: ProductFilter{Limit: 1}, want: []string{"Rose Toner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(found))
			for _, p := range found {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{Name: "Serum", Price: 10, CategoryID: category.ID}
	require.NoError(t, repo.Create(product))

	product.Price = 12
	product.Images = model.StringList{"b.jpg", "a.jpg"}
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(12), found.Price)
	assert.Equal(t, model.StringList{"b.jpg", "a.jpg"}, found.Images)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{Name: "Serum", CategoryID: category.ID}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Second delete of the same id reports not found.
	assert.ErrorIs(t, repo.Delete(product.ID), gorm.ErrRecordNotFound)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%serum%", containsPattern("serum"))
	assert.Equal(t, `%100\% pure\_oil\\x%`, containsPattern(`100% pure_oil\x`))
}
