package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite text", errors.New("UNIQUE constraint failed: invoices.bill_no"), true},
		{"postgres text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_invoices_bill_no"`), true},
		{"other", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil, "nf", "c", "p"))

	err := translateError(gorm.ErrRecordNotFound, "Invoice not found", "", "Failed")
	assert.True(t, shared.IsNotFound(err))
	assert.EqualError(t, err, "Invoice not found")

	err = translateError(gorm.ErrDuplicatedKey, "", "Bill number 3 is already taken", "Failed")
	assert.True(t, shared.IsConflict(err))

	// without a conflict message a duplicate is unexpected
	err = translateError(gorm.ErrDuplicatedKey, "", "", "Failed to read")
	assert.True(t, errors.Is(err, shared.ErrPersistence))

	cause := errors.New("disk I/O error")
	err = translateError(cause, "", "", "Failed to save invoice")
	var de *shared.DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, shared.CodePersistence, de.Code)
	assert.Equal(t, "Failed to save invoice", de.Message)
	assert.ErrorIs(t, err, cause)

	domain := shared.NewValidationError("bad")
	assert.Same(t, domain, translateError(domain, "", "", "Failed"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
