package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"drvaudit/internal/review"
)

func sampleIssues() []review.Issue {
	return []review.Issue{
		{
			Location: review.Location{Path: "drivers/adc/ad7124.c", Line: 42},
			Severity: review.SeverityWarning,
			Category: review.CategoryErrorHandling,
			Message:  "Function call without error handling",
			Origin:   review.OriginHeuristic,
		},
	}
}

func TestCache_PutGet(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	key := BuildScanKey("0.1.0", "drivers/adc/ad7124.c", "int x;")

	// Miss before put
	if _, ok := c.Get(key); ok {
		t.Error("Expected cache miss before put")
	}

	if err := c.Put(key, sampleIssues()); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected cache hit after put")
	}
	if len(got) != 1 {
		t.Fatalf("Issues = %d, want 1", len(got))
	}
	if got[0].Category != review.CategoryErrorHandling {
		t.Errorf("Category = %v, want error_handling", got[0].Category)
	}
	if got[0].Location.Line != 42 {
		t.Errorf("Line = %d, want 42", got[0].Location.Line)
	}
}

func TestCache_CleanScanIsAHit(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	key := BuildScanKey("0.1.0", "util/clean.c", "int x;")
	if err := c.Put(key, nil); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Zero-issue result should still be a hit")
	}
	if len(got) != 0 {
		t.Errorf("Issues = %d, want 0", len(got))
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 1) // 1 second TTL
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	key := "expire-test"
	if err := c.Put(key, sampleIssues()); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if _, ok := c.Get(key); !ok {
		t.Error("Expected cache hit before expiration")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("Expected cache miss after TTL expiration")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Enabled() {
		t.Error("Cache should be disabled")
	}

	// Operations should be no-ops
	if err := c.Put("key", sampleIssues()); err != nil {
		t.Errorf("Put on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("Get on disabled cache should always miss")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear on disabled cache should not error: %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := c.Put(key, sampleIssues()); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	entries, _ := os.ReadDir(dir)
	jsonCount := 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			jsonCount++
		}
	}
	if jsonCount != 5 {
		t.Fatalf("Expected 5 cache entries, got %d", jsonCount)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	entries, _ = os.ReadDir(dir)
	jsonCount = 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			jsonCount++
		}
	}
	if jsonCount != 0 {
		t.Errorf("Expected 0 cache entries after clear, got %d", jsonCount)
	}
}

func TestCache_GetStats(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d, want 0", stats.Entries)
	}

	c.Put("key1", sampleIssues())
	c.Put("key2", nil)

	stats, err = c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalBytes <= 0 {
		t.Error("TotalBytes should be > 0")
	}
	if stats.Dir != dir {
		t.Errorf("Dir = %q, want %q", stats.Dir, dir)
	}
}

func TestHashKey(t *testing.T) {
	h1 := HashKey("test")
	h2 := HashKey("test")
	h3 := HashKey("other")

	if h1 != h2 {
		t.Error("Same input should produce same hash")
	}
	if h1 == h3 {
		t.Error("Different input should produce different hash")
	}
	if len(h1) != 64 { // SHA-256 hex = 64 chars
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestBuildScanKey(t *testing.T) {
	k1 := BuildScanKey("0.1.0", "drivers/a.c", "int x;")
	k2 := BuildScanKey("0.1.0", "drivers/a.c", "int x;")
	k3 := BuildScanKey("0.2.0", "drivers/a.c", "int x;")
	k4 := BuildScanKey("0.1.0", "drivers/a.c", "int y;")

	if k1 != k2 {
		t.Error("Same inputs should produce same cache key")
	}
	if k1 == k3 {
		t.Error("Different version should produce different cache key")
	}
	if k1 == k4 {
		t.Error("Different content should produce different cache key")
	}
}
