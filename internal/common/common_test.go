package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsLeavesSentinelUntouched(t *testing.T) {
	detailed := ErrNotFound.WithDetails("Provider not found.")

	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, "Provider not found.", detailed.Details)
	assert.True(t, errors.Is(detailed, ErrNotFound))
	assert.False(t, errors.Is(detailed, ErrConflict))

	wrapped := fmt.Errorf("lookup: %w", detailed)
	apiErr, ok := IsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, p := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	page, p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)
	assert.False(t, p.HasNext)

	page, _ = Paginate(items, 9, 2)
	assert.Empty(t, page)

	page, p = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 0, p.TotalPages)
}
