package invoicing

import (
	"context"
	"sync"
	"testing"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/infrastructure/config"
	"github.com/catering/gstbill/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCommitService(t *testing.T, opts ...CommitServiceOption) (*CommitService, *persistence.GormInvoiceRepository, *CatalogService) {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := persistence.NewGormInvoiceRepository(db.DB)
	catalogService := NewCatalogService(persistence.NewGormCatalogStore(db.DB), "database", nil)
	svc := NewCommitService(repo, persistence.NewGormBillNumberAllocator(db.DB), catalogService, opts...)
	return svc, repo, catalogService
}

func TestCommit_ConcurrentCommitsGetDistinctBillNumbers(t *testing.T) {
	const n = 12

	// a commit only loses a reservation to another commit that won, so n
	// attempts always suffice
	svc, repo, catalogService := newSQLiteCommitService(t, WithMaxAttempts(n))
	ctx := context.Background()
	draft := thaliDraft(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		billNos = make(map[string]int)
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := svc.Commit(ctx, draft)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			billNos[inv.BillNo]++
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, billNos, n)
	for i := 1; i <= n; i++ {
		assert.Equal(t, 1, billNos[invoice.FormatBillNumber(int64(i))], "bill number %d", i)
	}

	stored, total, err := repo.FindAll(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, n, total)
	assert.Len(t, stored, n)

	entries, err := catalogService.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"veg thali", "lassi"}, entries)
}

func TestCommit_DeletedNumbersAreNotReused(t *testing.T) {
	svc, repo, _ := newSQLiteCommitService(t)
	ctx := context.Background()

	var last *invoice.Invoice
	for i := 0; i < 3; i++ {
		inv, err := svc.Commit(ctx, thaliDraft(t))
		require.NoError(t, err)
		last = inv
	}
	require.Equal(t, "3", last.BillNo)

	_, err := repo.Delete(ctx, last.ID)
	require.NoError(t, err)

	next, err := svc.Commit(ctx, thaliDraft(t))
	require.NoError(t, err)
	assert.Equal(t, "4", next.BillNo)
}
