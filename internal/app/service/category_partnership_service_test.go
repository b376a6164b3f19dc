package service

import (
	"context"
	"testing"

	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryPartnershipServiceTest(t *testing.T) (CategoryPartnershipService, PartnershipService) {
	testDB := setupTestDB(t)

	categoryRepo := repository.NewCategoryPartnershipRepository(testDB)
	uploads, _ := newTestUploads()
	return NewCategoryPartnershipService(categoryRepo, 1),
		NewPartnershipService(repository.NewPartnershipRepository(testDB), categoryRepo, uploads)
}

func TestCategoryPartnershipService_ListSeedsDefaults(t *testing.T) {
	svc, _ := setupCategoryPartnershipServiceTest(t)

	list, err := svc.ListCategoryPartnerships()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mart", list[0].Name)
	assert.Equal(t, uint(1), list[0].ID)
	assert.Equal(t, "Pharmacy", list[1].Name)

	list, err = svc.ListCategoryPartnerships()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCategoryPartnershipService_Create(t *testing.T) {
	svc, _ := setupCategoryPartnershipServiceTest(t)

	_, err := svc.CreateCategoryPartnership("")
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "name", ve.Field)

	created, err := svc.CreateCategoryPartnership("Supermarkets")
	require.NoError(t, err)

	list, err := svc.ListCategoryPartnerships()
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Supermarkets")

	found, err := svc.GetCategoryPartnershipByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Supermarkets", found.Name)
}

func TestCategoryPartnershipService_DeleteReassigns(t *testing.T) {
	svc, partnerships := setupCategoryPartnershipServiceTest(t)
	ctx := context.Background()

	_, err := svc.ListCategoryPartnerships()
	require.NoError(t, err)

	doomed, err := svc.CreateCategoryPartnership("Supermarkets")
	require.NoError(t, err)

	const n = 3
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		p, err := partnerships.CreatePartnership(ctx, PartnershipInput{
			Name:                  "Store",
			Image:                 "https://cdn.test/p.jpg",
			CategoryPartnershipID: doomed.ID,
		}, nil)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	moved, err := svc.DeleteCategoryPartnership(doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), moved)

	for _, id := range ids {
		p, err := partnerships.GetPartnershipByID(id)
		require.NoError(t, err)
		assert.Equal(t, uint(1), p.CategoryPartnershipID)
	}

	_, err = svc.GetCategoryPartnershipByID(doomed.ID)
	assert.ErrorIs(t, err, ErrCategoryPartnershipNotFound)

	_, err = svc.DeleteCategoryPartnership(doomed.ID)
	assert.ErrorIs(t, err, ErrCategoryPartnershipNotFound)
}

func TestCategoryPartnershipService_FallbackProtected(t *testing.T) {
	svc, _ := setupCategoryPartnershipServiceTest(t)

	_, err := svc.ListCategoryPartnerships()
	require.NoError(t, err)

	_, err = svc.DeleteCategoryPartnership(1)
	assert.ErrorIs(t, err, ErrFallbackCategoryProtected)
	assert.ErrorIs(t, err, ErrReferenced)
}

func TestCategoryPartnershipService_Update(t *testing.T) {
	svc, _ := setupCategoryPartnershipServiceTest(t)

	c, err := svc.CreateCategoryPartnership("Mart")
	require.NoError(t, err)

	updated, err := svc.UpdateCategoryPartnership(c.ID, "Hypermarket")
	require.NoError(t, err)
	assert.Equal(t, "Hypermarket", updated.Name)

	_, err = svc.UpdateCategoryPartnership(c.ID, " ")
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestPartnershipService(t *testing.T) {
	svc, partnerships := setupCategoryPartnershipServiceTest(t)
	ctx := context.Background()

	list, err := svc.ListCategoryPartnerships()
	require.NoError(t, err)
	mart := list[0]

	_, err = partnerships.CreatePartnership(ctx, PartnershipInput{Name: "Store", CategoryPartnershipID: mart.ID}, nil)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "image", ve.Field)

	_, err = partnerships.CreatePartnership(ctx, PartnershipInput{Name: "Store", Image: "x.jpg", CategoryPartnershipID: 9999}, nil)
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "category_partnership_id", ve.Field)

	file := pngFile("logo.png")
	created, err := partnerships.CreatePartnership(ctx, PartnershipInput{Name: "Store", CategoryPartnershipID: mart.ID}, &file)
	require.NoError(t, err)
	assert.Contains(t, created.Image, "https://cdn.test/brandsite/")
	require.NotNil(t, created.CategoryPartnership)
	assert.Equal(t, "Mart", created.CategoryPartnership.Name)

	updated, err := partnerships.UpdatePartnership(ctx, created.ID, PartnershipInput{
		Name:                  "Store Renamed",
		Image:                 created.Image,
		CategoryPartnershipID: list[1].ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Store Renamed", updated.Name)
	assert.Equal(t, created.Image, updated.Image)

	byCategory, err := partnerships.ListPartnerships(&list[1].ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	require.NoError(t, partnerships.DeletePartnership(created.ID))
	assert.ErrorIs(t, partnerships.DeletePartnership(created.ID), ErrPartnershipNotFound)
}

func TestCategoryPartnershipService_DeleteWithMissingFallback(t *testing.T) {
	testDB := setupTestDB(t)
	categoryRepo := repository.NewCategoryPartnershipRepository(testDB)
	svc := NewCategoryPartnershipService(categoryRepo, 42)

	c, err := svc.CreateCategoryPartnership("Mart")
	require.NoError(t, err)

	t.Run("Unknown id is not found", func(t *testing.T) {
		_, err := svc.DeleteCategoryPartnership(999)
		assert.ErrorIs(t, err, ErrCategoryPartnershipNotFound)
	})

	t.Run("Existing id reports the misconfiguration", func(t *testing.T) {
		_, err := svc.DeleteCategoryPartnership(c.ID)
		assert.ErrorIs(t, err, ErrFallbackCategoryMissing)
		_, ok := AsValidationError(err)
		assert.False(t, ok)

		_, err = svc.GetCategoryPartnershipByID(c.ID)
		assert.NoError(t, err)
	})
}
