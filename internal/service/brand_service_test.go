package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/workflow"
)

func TestBrandSubmitStartsPending(t *testing.T) {
	brands := newFakeBrandStore()
	rec := &fakeRecorder{}
	svc := NewBrandService(brands, rec)

	brand, err := svc.Submit(context.Background(), &SubmitBrandRequest{
		Name:         "  Lotus  ",
		ContactEmail: "hello@lotus.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lotus", brand.Name)
	assert.Equal(t, workflow.StatusPending, brand.Status)
	require.Len(t, rec.submissions, 1)
	assert.Equal(t, models.NotificationBrand, rec.submissions[0].kind)
}

func TestBrandSubmitValidation(t *testing.T) {
	brands := newFakeBrandStore()
	brands.takenNames["Lotus"] = true
	svc := NewBrandService(brands, &fakeRecorder{})

	_, err := svc.Submit(context.Background(), &SubmitBrandRequest{Name: "   "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Brand name is required", vErr.Message)

	_, err = svc.Submit(context.Background(), &SubmitBrandRequest{Name: "Lotus"})
	assert.ErrorIs(t, err, utils.ErrBrandNameTaken)
}

func TestBrandModerate(t *testing.T) {
	brands := newFakeBrandStore()
	b := &models.Brand{Name: "Lotus", Status: workflow.StatusPending}
	require.NoError(t, brands.Create(context.Background(), b))

	rec := &fakeRecorder{}
	svc := NewBrandService(brands, rec)

	moderated, err := svc.Moderate(context.Background(), b.ID, workflow.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAccepted, moderated.Status)

	// A rejected decision on an already accepted brand is refused.
	_, err = svc.Moderate(context.Background(), b.ID, workflow.StatusRejected)
	var tErr *workflow.ErrInvalidTransition
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, workflow.StatusAccepted, tErr.From)

	_, err = svc.Moderate(context.Background(), 999, workflow.StatusAccepted)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestBrandModerateStatusConflict(t *testing.T) {
	brands := newFakeBrandStore()
	b := &models.Brand{Name: "Lotus", Status: workflow.StatusPending}
	require.NoError(t, brands.Create(context.Background(), b))

	var zero int64
	brands.casRows = &zero

	svc := NewBrandService(brands, &fakeRecorder{})
	_, err := svc.Moderate(context.Background(), b.ID, workflow.StatusAccepted)
	assert.ErrorIs(t, err, utils.ErrStatusConflict)
}
