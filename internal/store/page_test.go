package store_test

import (
	"strconv"
	"testing"

	"academy-service/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     store.PageRequest
		wantErr string
	}{
		{name: "valid", req: store.PageRequest{Page: 0, Size: 20}},
		{name: "max size", req: store.PageRequest{Page: 3, Size: store.MaxPageSize}},
		{name: "negative page", req: store.PageRequest{Page: -1, Size: 5}, wantErr: "page must not be negative"},
		{name: "zero size", req: store.PageRequest{Page: 0, Size: 0}, wantErr: "size must be positive"},
		{name: "too large", req: store.PageRequest{Page: 0, Size: 101}, wantErr: "size must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNewPageMetadata(t *testing.T) {
	p := store.NewPage([]int{1, 2}, store.PageRequest{Page: 0, Size: 2}, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)
	assert.Equal(t, 4, store.PageRequest{Page: 2, Size: 2}.Offset())

	empty := store.NewPage[int](nil, store.PageRequest{Page: 0, Size: 10}, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.First)
	assert.True(t, empty.Last)
}

func TestMapPageKeepsMetadata(t *testing.T) {
	p := store.NewPage([]int{7, 8}, store.PageRequest{Page: 1, Size: 2}, 4)

	mapped := store.MapPage(p, strconv.Itoa)
	assert.Equal(t, []string{"7", "8"}, mapped.Content)
	assert.Equal(t, p.Page, mapped.Page)
	assert.Equal(t, p.Size, mapped.Size)
	assert.Equal(t, p.TotalElements, mapped.TotalElements)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
	assert.True(t, mapped.Last)
}
