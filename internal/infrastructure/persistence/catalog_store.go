package persistence

import (
	"context"
	"time"

	"github.com/catering/gstbill/internal/domain/catalog"
	"github.com/catering/gstbill/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogStore keeps the item catalog in the item_catalog_entries table.
// The unique index on description makes AddAll a set union.
type GormCatalogStore struct {
	db *gorm.DB
}

// NewGormCatalogStore creates a new GormCatalogStore
func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

// AddAll inserts entries that are not stored yet
func (s *GormCatalogStore) AddAll(ctx context.Context, entries []string) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now()
	rows := make([]models.ItemCatalogEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.ItemCatalogEntryModel{Description: e, CreatedAt: now}
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "description"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, translateError(result.Error, "", "", "Failed to update item catalog")
	}
	return int(result.RowsAffected), nil
}

// All returns every entry in insertion order
func (s *GormCatalogStore) All(ctx context.Context) ([]string, error) {
	entries := []string{}
	if err := s.db.WithContext(ctx).
		Model(&models.ItemCatalogEntryModel{}).
		Order("id ASC").
		Pluck("description", &entries).Error; err != nil {
		return nil, translateError(err, "", "", "Failed to read item catalog")
	}
	return entries, nil
}

// MatchPrefix returns entries starting with prefix in insertion order
func (s *GormCatalogStore) MatchPrefix(ctx context.Context, prefix string) ([]string, error) {
	entries := []string{}
	if err := s.db.WithContext(ctx).
		Model(&models.ItemCatalogEntryModel{}).
		Where(`description LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("id ASC").
		Pluck("description", &entries).Error; err != nil {
		return nil, translateError(err, "", "", "Failed to read item catalog")
	}
	return entries, nil
}

// Ensure GormCatalogStore implements catalog.Store
var _ catalog.Store = (*GormCatalogStore)(nil)
