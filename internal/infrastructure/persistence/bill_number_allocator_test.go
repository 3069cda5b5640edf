package persistence

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitN reserves and stores bill numbers 1..n the way the commit path does
func commitN(t *testing.T, alloc *GormBillNumberAllocator, repo *GormInvoiceRepository, n int) []string {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		billNo, err := alloc.Next(ctx)
		require.NoError(t, err)
		require.NoError(t, alloc.Reserve(ctx, billNo))

		inv := testInvoice(t, billNo, "Customer "+billNo, time.Now())
		require.NoError(t, repo.Create(ctx, inv))
		ids = append(ids, inv.ID.String())
	}
	return ids
}

func TestGormBillNumberAllocator_EmptyStore(t *testing.T) {
	alloc := NewGormBillNumberAllocator(setupTestDB(t))

	next, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", next)
}

func TestGormBillNumberAllocator_DeletedInvoicesDoNotFreeNumbers(t *testing.T) {
	tests := []struct {
		name    string
		deleted []int
	}{
		{"middle deleted", []int{3}},
		{"newest deleted", []int{5}},
		{"several deleted", []int{3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			alloc := NewGormBillNumberAllocator(db)
			repo := NewGormInvoiceRepository(db)
			ctx := context.Background()

			ids := commitN(t, alloc, repo, 5)
			for _, n := range tt.deleted {
				inv, err := repo.FindByBillNo(ctx, strconv.Itoa(n))
				require.NoError(t, err)
				_, err = repo.Delete(ctx, inv.ID)
				require.NoError(t, err)
			}
			require.Len(t, ids, 5)

			next, err := alloc.Next(ctx)
			require.NoError(t, err)
			assert.Equal(t, "6", next)
		})
	}
}

func TestGormBillNumberAllocator_NextFollowsStoredInvoices(t *testing.T) {
	db := setupTestDB(t)
	alloc := NewGormBillNumberAllocator(db)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	// invoices imported without going through the sequence
	require.NoError(t, repo.Create(ctx, testInvoice(t, "41", "Imported", time.Now())))
	require.NoError(t, repo.Create(ctx, testInvoice(t, "LEGACY-7", "Imported", time.Now())))

	next, err := alloc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", next)
}

func TestGormBillNumberAllocator_Reserve(t *testing.T) {
	alloc := NewGormBillNumberAllocator(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, alloc.Reserve(ctx, "3"))

	t.Run("same number twice conflicts", func(t *testing.T) {
		err := alloc.Reserve(ctx, "3")
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("lower number conflicts", func(t *testing.T) {
		err := alloc.Reserve(ctx, "2")
		assert.True(t, shared.IsConflict(err))
	})

	t.Run("non numeric is invalid", func(t *testing.T) {
		for _, billNo := range []string{"", "abc", "0", "-4"} {
			err := alloc.Reserve(ctx, billNo)
			assert.True(t, shared.IsValidation(err), billNo)
		}
	})

	t.Run("next reflects reservation", func(t *testing.T) {
		next, err := alloc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "4", next)
	})
}

func TestGormBillNumberAllocator_ConcurrentReserveSucceedsOnce(t *testing.T) {
	alloc := NewGormBillNumberAllocator(setupTestDB(t))
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		won       int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := alloc.Reserve(ctx, "1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case shared.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won)
	assert.Equal(t, workers-1, conflicts)
}

func TestGormBillNumberAllocator_ReserveSQL(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	alloc := NewGormBillNumberAllocator(db)

	mock.ExpectExec(`INSERT INTO bill_sequences .* ON CONFLICT \(name\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "bill_sequences" SET .* WHERE name = \$\d+ AND last_value < \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := alloc.Reserve(context.Background(), "12")

	assert.True(t, shared.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBillNumberAllocator_NextSQL(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	alloc := NewGormBillNumberAllocator(db)

	mock.ExpectQuery(`SELECT \* FROM "bill_sequences" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "last_value"}).AddRow("invoice", 9))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(bill_seq\), 0\) FROM "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12))

	next, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "13", next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBillNumberAllocator_NextReadFailure(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	alloc := NewGormBillNumberAllocator(db)

	mock.ExpectQuery(`SELECT \* FROM "bill_sequences"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "last_value"}))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(bill_seq\), 0\) FROM "invoices"`).
		WillReturnError(errors.New("connection reset"))

	_, err := alloc.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}
