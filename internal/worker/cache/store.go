// Package cache implements the worker's HTTP-level cache: named, wholesale
// replaceable generations of stored responses, two fetch strategies, and
// the install/activate lifecycle that rolls generations over.
package cache

import (
	"context"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is one cached HTTP response. Freshness is implicit last-write-wins;
// eviction happens only by deleting the whole generation.
type Entry struct {
	URL      string
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// Store is the cache backend: match/put/delete/keys over (generation, URL)
// pairs. A miss is (nil, nil), not an error.
type Store interface {
	Match(ctx context.Context, generation, url string) (*Entry, error)
	Put(ctx context.Context, generation string, entry *Entry) error
	Delete(ctx context.Context, generation, url string) error
	Keys(ctx context.Context, generation string) ([]string, error)
	Generations(ctx context.Context) ([]string, error)
	DeleteGeneration(ctx context.Context, generation string) error
}

// memory key separator; URLs cannot contain a NUL byte.
const keySep = "\x00"

// MemoryStore is a Store over an in-process map. It does not survive a
// worker restart; the SQLite store does.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an empty in-memory store. Entries never expire
// on their own; generation rollover is the only eviction.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryStore) Match(_ context.Context, generation, url string) (*Entry, error) {
	v, ok := m.c.Get(generation + keySep + url)
	if !ok {
		return nil, nil
	}
	e := v.(Entry)
	return &e, nil
}

func (m *MemoryStore) Put(_ context.Context, generation string, entry *Entry) error {
	m.c.Set(generation+keySep+entry.URL, *entry, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, generation, url string) error {
	m.c.Delete(generation + keySep + url)
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, generation string) ([]string, error) {
	prefix := generation + keySep
	var keys []string
	for k := range m.c.Items() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	return keys, nil
}

func (m *MemoryStore) Generations(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var gens []string
	for k := range m.c.Items() {
		gen, _, ok := strings.Cut(k, keySep)
		if !ok {
			continue
		}
		if _, dup := seen[gen]; dup {
			continue
		}
		seen[gen] = struct{}{}
		gens = append(gens, gen)
	}
	return gens, nil
}

func (m *MemoryStore) DeleteGeneration(_ context.Context, generation string) error {
	prefix := generation + keySep
	for k := range m.c.Items() {
		if strings.HasPrefix(k, prefix) {
			m.c.Delete(k)
		}
	}
	return nil
}
