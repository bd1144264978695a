package transync

import (
	"maps"
	"sync"
	"time"
)

// Provenance tells whether a cached locale includes remote data.
type Provenance string

const (
	ProvenanceBundled Provenance = "bundled-only"
	ProvenanceHybrid  Provenance = "hybrid"
)

// record is an immutable cache entry. Updates replace it.
type record struct {
	translations map[string]string
	lastUpdated  time.Time
	provenance   Provenance

	// remote is the last successfully fetched override snapshot. It is
	// re-merged when a later fetch fails or is skipped.
	remote map[string]string
}

func newRecord(bundled, remote map[string]string, now time.Time) *record {
	r := &record{
		translations: Merge(bundled, remote),
		lastUpdated:  now,
		provenance:   ProvenanceBundled,
	}
	if remote != nil {
		r.remote = remote
		r.provenance = ProvenanceHybrid
	}
	return r
}

func (r *record) fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.lastUpdated) < ttl
}

// lookup treats empty values as missing so a blank label is never served.
func (r *record) lookup(key string) (string, bool) {
	v, ok := r.translations[key]
	return v, ok && v != ""
}

// store holds one record per locale.
type store struct {
	mu      sync.RWMutex
	records map[string]*record
}

func newStore() *store {
	return &store{records: make(map[string]*record)}
}

func (s *store) get(locale string) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[locale]
	return r, ok
}

func (s *store) put(locale string, r *record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[locale] = r
}

func (s *store) isValid(locale string, now time.Time, ttl time.Duration) bool {
	r, ok := s.get(locale)
	return ok && r.fresh(now, ttl)
}

// patch sets one key on a copy of the record. It keeps lastUpdated and
// provenance and returns false when the locale has no record.
func (s *store) patch(locale, key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[locale]
	if !ok {
		return false
	}
	next := *cur
	next.translations = maps.Clone(cur.translations)
	next.translations[key] = value
	s.records[locale] = &next
	return true
}

func (s *store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.records)
}

func (s *store) snapshot() map[string]*record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.records)
}
