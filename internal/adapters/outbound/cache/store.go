package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"

	"github.com/openkraft/javaqc/internal/domain"
)

const (
	DefaultTTL      = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// Store is an in-memory implementation of domain.ParseCache. Entries are
// keyed by the xxh3 hash of the transcript and expire after the TTL.
type Store struct {
	items *gocache.Cache
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{items: gocache.New(ttl, cleanupInterval)}
}

func key(kind, text string) string {
	return kind + ":" + strconv.FormatUint(xxh3.HashString(text), 16) + ":" + strconv.Itoa(len(text))
}

func (s *Store) GetBuild(text string) (*domain.BuildReport, bool) {
	v, ok := s.items.Get(key("build", text))
	if !ok {
		return nil, false
	}
	r, ok := v.(*domain.BuildReport)
	return r, ok
}

func (s *Store) PutBuild(text string, r *domain.BuildReport) {
	s.items.Set(key("build", text), r, gocache.DefaultExpiration)
}

func (s *Store) GetStyle(text string) (*domain.StyleReport, bool) {
	v, ok := s.items.Get(key("style", text))
	if !ok {
		return nil, false
	}
	r, ok := v.(*domain.StyleReport)
	return r, ok
}

func (s *Store) PutStyle(text string, r *domain.StyleReport) {
	s.items.Set(key("style", text), r, gocache.DefaultExpiration)
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// Flush drops every entry.
func (s *Store) Flush() {
	s.items.Flush()
}
