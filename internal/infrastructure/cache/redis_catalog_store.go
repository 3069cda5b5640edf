package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/catering/gstbill/internal/domain/catalog"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultCatalogKey is the Redis set holding the item catalog
const DefaultCatalogKey = "gstbill:item_catalog"

const scanBatch = 256

// RedisCatalogStore keeps the item catalog in one Redis set. SADD is the
// set union, so concurrent writers never lose entries.
type RedisCatalogStore struct {
	client *redis.Client
	key    string
}

// NewRedisCatalogStore creates a catalog store on key
func NewRedisCatalogStore(client *redis.Client, key string) *RedisCatalogStore {
	if key == "" {
		key = DefaultCatalogKey
	}
	return &RedisCatalogStore{client: client, key: key}
}

// AddAll adds entries with a single SADD
func (s *RedisCatalogStore) AddAll(ctx context.Context, entries []string) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	members := make([]any, len(entries))
	for i, e := range entries {
		members[i] = e
	}
	added, err := s.client.SAdd(ctx, s.key, members...).Result()
	if err != nil {
		return 0, shared.NewPersistenceError("Failed to update item catalog", err)
	}
	return int(added), nil
}

// All returns every entry, sorted; Redis sets keep no insertion order
func (s *RedisCatalogStore) All(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, shared.NewPersistenceError("Failed to read item catalog", err)
	}
	sort.Strings(members)
	return members, nil
}

// MatchPrefix walks the set with SSCAN MATCH prefix*
func (s *RedisCatalogStore) MatchPrefix(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	seen := make(map[string]struct{})
	out := []string{}

	var cursor uint64
	for {
		keys, next, err := s.client.SScan(ctx, s.key, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, shared.NewPersistenceError("Failed to search item catalog", err)
		}
		// SSCAN may return an element more than once
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	sort.Strings(out)
	return out, nil
}

// escapeGlob escapes Redis glob metacharacters so the prefix matches literally
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ensure RedisCatalogStore implements catalog.Store
var _ catalog.Store = (*RedisCatalogStore)(nil)
