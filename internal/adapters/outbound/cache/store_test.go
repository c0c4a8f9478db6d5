package cache_test

import (
	"testing"
	"time"

	"github.com/openkraft/javaqc/internal/adapters/outbound/cache"
	"github.com/openkraft/javaqc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_BuildRoundTrip(t *testing.T) {
	s := cache.New(time.Minute)
	_, ok := s.GetBuild("log text")
	assert.False(t, ok)

	r := domain.NewBuildReport()
	s.PutBuild("log text", r)

	got, ok := s.GetBuild("log text")
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_KindsDoNotCollide(t *testing.T) {
	s := cache.New(time.Minute)
	s.PutBuild("same text", domain.NewBuildReport())

	_, ok := s.GetStyle("same text")
	assert.False(t, ok)

	s.PutStyle("same text", domain.NewStyleReport())
	_, ok = s.GetStyle("same text")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStore_DifferentTextMisses(t *testing.T) {
	s := cache.New(time.Minute)
	s.PutStyle("a", domain.NewStyleReport())
	_, ok := s.GetStyle("b")
	assert.False(t, ok)
}

func TestStore_Expires(t *testing.T) {
	s := cache.New(20 * time.Millisecond)
	s.PutBuild("x", domain.NewBuildReport())
	time.Sleep(40 * time.Millisecond)
	_, ok := s.GetBuild("x")
	assert.False(t, ok)
}

func TestStore_Flush(t *testing.T) {
	s := cache.New(0)
	s.PutBuild("x", domain.NewBuildReport())
	s.Flush()
	assert.Equal(t, 0, s.Len())
}
