package pricestore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/basketwise/backend/internal/domain"
)

// storedQuote pairs a quote with the time it entered the store.
type storedQuote struct {
	quote    domain.PriceQuote
	storedAt time.Time
}

// MemoryStore is a thread-safe in-memory quote repository. Quotes older
// than the freshness window are treated as absent, mirroring how scraped
// prices go stale.
type MemoryStore struct {
	data      map[string]storedQuote
	mutex     sync.RWMutex
	freshness time.Duration
}

// NewMemoryStore creates an in-memory quote store with the given freshness
// window. A zero window defaults to 7 days.
func NewMemoryStore(freshness time.Duration) *MemoryStore {
	if freshness == 0 {
		freshness = 7 * 24 * time.Hour
	}

	store := &MemoryStore{
		data:      make(map[string]storedQuote),
		freshness: freshness,
	}

	// Cleanup goroutine removes stale quotes every 10 minutes
	go store.cleanupStale()

	return store
}

// quoteKey identifies one product at one store in one city.
func quoteKey(quote domain.PriceQuote) string {
	return strings.ToLower(quote.NormalizedName) + "|" + strings.ToLower(quote.Store) + "|" + strings.ToLower(quote.City)
}

// List returns fresh quotes matching the filter. City is matched
// case-insensitively; empty Category/Store match everything.
func (s *MemoryStore) List(ctx context.Context, filter domain.QuoteFilter) ([]domain.PriceQuote, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cutoff := time.Now().Add(-s.freshness)
	quotes := make([]domain.PriceQuote, 0, len(s.data))
	for _, stored := range s.data {
		if stored.storedAt.Before(cutoff) {
			continue
		}
		q := stored.quote
		if filter.City != "" && !strings.EqualFold(q.City, filter.City) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(q.Category, filter.Category) {
			continue
		}
		if filter.Store != "" && !strings.EqualFold(q.Store, filter.Store) {
			continue
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// Upsert stores a quote, replacing any previous observation of the same
// product at the same store and city.
func (s *MemoryStore) Upsert(ctx context.Context, quote domain.PriceQuote) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[quoteKey(quote)] = storedQuote{
		quote:    quote,
		storedAt: time.Now(),
	}
	return nil
}

// Size returns the current number of stored quotes (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all quotes from the store.
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]storedQuote)
}

// cleanupStale removes stale quotes from the store periodically.
func (s *MemoryStore) cleanupStale() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		cutoff := time.Now().Add(-s.freshness)
		for key, stored := range s.data {
			if stored.storedAt.Before(cutoff) {
				delete(s.data, key)
			}
		}
		s.mutex.Unlock()
	}
}
