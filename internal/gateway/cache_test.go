package gateway

import (
	"testing"
	"time"

	"github.com/openfoodshare/foodgate/pkg/tabular"
)

func sampleTable() *tabular.Table {
	return &tabular.Table{
		Columns: []string{"City", "total_providers"},
		Rows: [][]any{
			{"Springfield", int64(4)},
			{"Shelbyville", int64(2)},
		},
	}
}

func TestCacheGetPut(t *testing.T) {
	c := NewCache(1 * time.Minute)

	if _, ok := c.Get("SELECT 1", nil); ok {
		t.Error("expected miss on empty cache")
	}

	c.Put("SELECT 1", nil, sampleTable())
	got, ok := c.Get("SELECT 1", nil)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got.Rows) != 2 || got.Rows[0][0] != "Springfield" {
		t.Errorf("unexpected cached rows: %v", got.Rows)
	}
}

func TestCacheKeyIncludesParams(t *testing.T) {
	c := NewCache(1 * time.Minute)

	c.Put("SELECT * FROM providers WHERE ($1::text IS NULL) OR (\"City\" = $1)", []any{"Springfield"}, sampleTable())

	if _, ok := c.Get("SELECT * FROM providers WHERE ($1::text IS NULL) OR (\"City\" = $1)", []any{"Shelbyville"}); ok {
		t.Error("different parameter tuple must not hit the same entry")
	}
	if _, ok := c.Get("SELECT * FROM providers WHERE ($1::text IS NULL) OR (\"City\" = $1)", []any{nil}); ok {
		t.Error("nil parameter must not hit the string-parameter entry")
	}
	if _, ok := c.Get("SELECT * FROM providers WHERE ($1::text IS NULL) OR (\"City\" = $1)", []any{"Springfield"}); !ok {
		t.Error("identical (query, params) pair must hit")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache(50 * time.Millisecond)

	c.Put("SELECT 1", nil, sampleTable())
	if _, ok := c.Get("SELECT 1", nil); !ok {
		t.Error("expected hit inside TTL window")
	}

	time.Sleep(80 * time.Millisecond)

	if _, ok := c.Get("SELECT 1", nil); ok {
		t.Error("expected expiry after TTL window")
	}

	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestCacheReturnsIsolatedCopies(t *testing.T) {
	c := NewCache(1 * time.Minute)
	c.Put("SELECT 1", nil, sampleTable())

	first, _ := c.Get("SELECT 1", nil)
	first.Rows[0][0] = "mutated"

	second, _ := c.Get("SELECT 1", nil)
	if second.Rows[0][0] != "Springfield" {
		t.Errorf("cached entry was mutated through a returned copy: %v", second.Rows[0])
	}
}

func TestCachePutIsolatesSource(t *testing.T) {
	c := NewCache(1 * time.Minute)
	src := sampleTable()
	c.Put("SELECT 1", nil, src)

	src.Rows[0][0] = "mutated"

	got, _ := c.Get("SELECT 1", nil)
	if got.Rows[0][0] != "Springfield" {
		t.Errorf("cached entry shares storage with the stored table: %v", got.Rows[0])
	}
}

func TestCacheStatsCounters(t *testing.T) {
	c := NewCache(1 * time.Minute)

	c.Put("SELECT 1", nil, sampleTable())
	c.Get("SELECT 1", nil) // hit
	c.Get("SELECT 2", nil) // miss
	c.Get("SELECT 1", nil) // hit

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.Entries)
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(1 * time.Minute)
	c.Put("SELECT 1", nil, sampleTable())
	c.Put("SELECT 2", nil, sampleTable())

	c.Clear()

	if _, ok := c.Get("SELECT 1", nil); ok {
		t.Error("expected entries to be gone after Clear")
	}
}
