package student_test

import (
	"context"
	"testing"

	"academy-service/internal/apperrors"
	"academy-service/internal/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreateAndGet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, student.CreateStudentRequest{Name: "Ana", Email: "ana@x.com", Age: 18})
	require.NoError(t, err)

	got, err := f.service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	stored, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SYSTEM", stored.CreatedBy)
	assert.Equal(t, "SYSTEM", stored.UpdatedBy)
}

func TestServiceNotFoundCarriesID(t *testing.T) {
	f := setup(t)

	_, err := f.service.GetByID(context.Background(), 77)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, int64(77), appErr.Details["id"])
}

func TestServiceDuplicateEmailIsConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, student.CreateStudentRequest{Name: "Ana", Email: "ana@x.com", Age: 20})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, student.CreateStudentRequest{Name: "Bea", Email: "ana@x.com", Age: 22})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestServiceSearchRejectsBeforeQuerying(t *testing.T) {
	f := setup(t)

	_, err := f.service.Search(context.Background(), student.SearchRequest{
		Filters: map[string]interface{}{"created_by": "SYSTEM"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.service.Search(context.Background(), student.SearchRequest{Size: 500})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestServiceGetAllPagedValidates(t *testing.T) {
	f := setup(t)

	_, err := f.service.GetAllPaged(context.Background(), -1, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRepositoryDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, student.CreateStudentRequest{Name: "Ana", Email: "ana@x.com", Age: 20})
	require.NoError(t, err)

	deleted, err := f.repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.service.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
