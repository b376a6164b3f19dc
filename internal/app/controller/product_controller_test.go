package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/internal/app/model"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	router   *gin.Engine
	repo     repository.ProductRepository
	store    *storage.MemoryStorage
	category *model.Category
}

func setupProductControllerTest(t *testing.T) productFixture {
	testDB := setupTestDB(t)

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	uploads, store := newTestUploads()
	ctrl := NewProductController(service.NewProductService(productRepo, categoryRepo, uploads))

	category := &model.Category{Name: "Snacks"}
	require.NoError(t, categoryRepo.Create(category))

	router := newAdminRouter()
	router.GET("/product", ctrl.GetAllProducts)
	router.GET("/product/:id", ctrl.GetProductByID)
	router.POST("/product", ctrl.CreateProduct)
	router.PUT("/product/:id", ctrl.UpdateProduct)
	router.DELETE("/product/:id", ctrl.DeleteProduct)

	return productFixture{router: router, repo: productRepo, store: store, category: category}
}

func validProductBody(categoryID uint) map[string]interface{} {
	return map[string]interface{}{
		"name":          "Rice Cracker",
		"price":         3.5,
		"description":   "Crunchy",
		"sizes":         []string{"S", "M", "L"},
		"highlights":    []string{"Gluten free"},
		"ingredients":   []string{"Rice", "Salt"},
		"images":        []string{"https://cdn.test/a.png"},
		"category_id":   categoryID,
		"is_top_seller": true,
	}
}

func TestProductController_CreateThenGet(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doJSON(t, f.router, http.MethodPost, "/product", validProductBody(f.category.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)["product"].(map[string]interface{})
	id := uint(created["id"].(float64))

	w = doJSON(t, f.router, http.MethodGet, "/product/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "Rice Cracker", product["name"])
	assert.Equal(t, 3.5, product["price"])
	assert.Equal(t, "Crunchy", product["description"])
	assert.Equal(t, []interface{}{"S", "M", "L"}, product["sizes"])
	assert.Equal(t, []interface{}{"Gluten free"}, product["highlights"])
	assert.Equal(t, []interface{}{"Rice", "Salt"}, product["ingredients"])
	assert.Equal(t, []interface{}{"https://cdn.test/a.png"}, product["images"])
	assert.Equal(t, float64(f.category.ID), product["category_id"])
	assert.Equal(t, true, product["is_top_seller"])
}

func TestProductController_CreateMissingFields(t *testing.T) {
	f := setupProductControllerTest(t)

	fields := []string{"name", "price", "description", "highlights", "ingredients", "images", "category_id"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			body := validProductBody(f.category.ID)
			delete(body, field)

			w := doJSON(t, f.router, http.MethodPost, "/product", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			count, err := f.repo.Count()
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestProductController_UnknownCategory(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doJSON(t, f.router, http.MethodPost, "/product", validProductBody(f.category.ID+100))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category does not exist", decode(t, w)["message"])
}

func TestProductController_MultipartUpload(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doMultipart(t, f.router, http.MethodPost, "/product", map[string][]string{
		"name":        {"Honey Chips"},
		"price":       {"4"},
		"description": {"Sweet"},
		"highlights":  {"Local honey", ""},
		"ingredients": {"Potato", "Honey"},
		"images":      {"https://cdn.test/kept.png"},
		"category_id": {itoa(f.category.ID)},
	}, []formFileField{
		{Field: "files", Filename: "front.png", Data: pngBytes},
		{Field: "files", Filename: "back.png", Data: pngBytes},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	product := decode(t, w)["product"].(map[string]interface{})
	images := product["images"].([]interface{})
	require.Len(t, images, 3)
	assert.Equal(t, "https://cdn.test/kept.png", images[0])
	assert.Contains(t, images[1], "https://cdn.test/brandsite/")
	assert.Equal(t, []interface{}{"Local honey"}, product["highlights"])
	assert.Equal(t, 2, f.store.Len())
}

func TestProductController_UploadFailureWritesNothing(t *testing.T) {
	f := setupProductControllerTest(t)
	f.store.FailWith(func(string) error { return assert.AnError })

	w := doMultipart(t, f.router, http.MethodPost, "/product", map[string][]string{
		"name":        {"Honey Chips"},
		"price":       {"4"},
		"description": {"Sweet"},
		"highlights":  {"Local honey"},
		"ingredients": {"Potato"},
		"category_id": {itoa(f.category.ID)},
	}, []formFileField{{Field: "files", Filename: "front.png", Data: pngBytes}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UPLOAD_FAILED", decode(t, w)["error"])

	count, err := f.repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductController_Update(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doJSON(t, f.router, http.MethodPost, "/product", validProductBody(f.category.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["product"].(map[string]interface{})["id"].(float64))

	body := validProductBody(f.category.ID)
	body["name"] = "Rice Cracker XL"
	body["price"] = 0
	w = doJSON(t, f.router, http.MethodPut, "/product/"+itoa(id), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "Rice Cracker XL", product["name"])
	assert.Equal(t, float64(0), product["price"])

	w = doJSON(t, f.router, http.MethodPut, "/product/9999", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_DeleteTwice(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doJSON(t, f.router, http.MethodPost, "/product", validProductBody(f.category.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["product"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, f.router, http.MethodDelete, "/product/"+itoa(id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, f.router, http.MethodDelete, "/product/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["message"])
}

func TestProductController_ListFilters(t *testing.T) {
	f := setupProductControllerTest(t)

	first := validProductBody(f.category.ID)
	second := validProductBody(f.category.ID)
	second["name"] = "Seaweed Snack"
	second["is_top_seller"] = false
	require.Equal(t, http.StatusCreated, doJSON(t, f.router, http.MethodPost, "/product", first).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, f.router, http.MethodPost, "/product", second).Code)

	tests := []struct {
		name  string
		query string
		code  int
		count float64
	}{
		{name: "All", query: "", code: http.StatusOK, count: 2},
		{name: "Top sellers", query: "?top_seller=true", code: http.StatusOK, count: 1},
		{name: "Search", query: "?search=seaweed", code: http.StatusOK, count: 1},
		{name: "Category", query: "?category_id=" + itoa(f.category.ID), code: http.StatusOK, count: 2},
		{name: "Limit", query: "?limit=1", code: http.StatusOK, count: 1},
		{name: "Bad category", query: "?category_id=abc", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, f.router, http.MethodGet, "/product"+tt.query, nil)
			require.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.count, decode(t, w)["count"])
			}
		})
	}
}

func TestProductController_InvalidID(t *testing.T) {
	f := setupProductControllerTest(t)

	w := doJSON(t, f.router, http.MethodGet, "/product/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_INVALID_ID", decode(t, w)["error"])
}

func TestProductController_CamelCaseKeys(t *testing.T) {
	f := setupProductControllerTest(t)

	body := validProductBody(f.category.ID)
	delete(body, "category_id")
	delete(body, "is_top_seller")
	body["categoryId"] = f.category.ID
	body["isTopSeller"] = true

	w := doJSON(t, f.router, http.MethodPost, "/product", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, float64(f.category.ID), product["category_id"])
	assert.Equal(t, true, product["is_top_seller"])
}
