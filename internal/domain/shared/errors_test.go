package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewConflictError("Bill number 7 is already taken")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, IsConflict(fmt.Errorf("commit: %w", err)))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsValidation(err))
}

func TestDomainError_PersistenceWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceError("Failed to save invoice", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "Failed to save invoice", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDomainError_AsExtractsCode(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("Invoice not found"))

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, CodeNotFound, de.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"zero values", Filter{}, Filter{Page: 1, PageSize: DefaultPageSize}},
		{"caps page size", Filter{Page: 3, PageSize: 1000}, Filter{Page: 3, PageSize: MaxPageSize}},
		{"keeps valid", Filter{Page: 2, PageSize: 10}, Filter{Page: 2, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
	assert.Equal(t, 20, Filter{Page: 3, PageSize: 10}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated([]int{}, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
