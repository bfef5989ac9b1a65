package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type rejectAll struct{}

func (rejectAll) Validate(any) error { return errors.New("rejected") }

func TestValidated_StopsBeforeHandler(t *testing.T) {
	var called bool
	h := Validated(rejectAll{}, func(context.Context, string) (int, error) {
		called = true
		return 1, nil
	})

	n, err := h.Handle(context.Background(), "cmd")
	assert.EqualError(t, err, "rejected")
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, totalPages(7, 3))
	assert.Equal(t, 2, totalPages(6, 3))
	assert.Equal(t, 0, totalPages(0, 3))
	assert.Equal(t, 0, totalPages(5, 0))
}

func TestSlicePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, []int{7}, slicePage(items, 3, 3))
	assert.Equal(t, []int{1, 2, 3}, slicePage(items, 1, 3))
	assert.Empty(t, slicePage(items, 4, 3))
	assert.Empty(t, slicePage(items, 1<<62, 4))
	assert.Empty(t, slicePage(items, 1, 0))
}
