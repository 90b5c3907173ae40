package cache

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/flamelens/pkg/observability"
)

type recordingCacheHooks struct {
	observability.NoopCacheHooks
	hits   []string
	misses []string
	sets   []string
}

func (h *recordingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits = append(h.hits, keyType)
}

func (h *recordingCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses = append(h.misses, keyType)
}

func (h *recordingCacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.sets = append(h.sets, keyType)
}

func TestInstrumentedReportsEvents(t *testing.T) {
	hooks := &recordingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	c := NewInstrumented(inner)
	defer c.Close()

	// Miss, set, then hit
	if _, hit, _ := c.Get(ctx, "artifact:abc"); hit {
		t.Fatal("Get before Set should miss")
	}
	if err := c.Set(ctx, "artifact:abc", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:abc"); !hit {
		t.Fatal("Get after Set should hit")
	}

	if len(hooks.misses) != 1 || hooks.misses[0] != "artifact" {
		t.Errorf("misses = %v, want [artifact]", hooks.misses)
	}
	if len(hooks.sets) != 1 || hooks.sets[0] != "artifact" {
		t.Errorf("sets = %v, want [artifact]", hooks.sets)
	}
	if len(hooks.hits) != 1 || hooks.hits[0] != "artifact" {
		t.Errorf("hits = %v, want [artifact]", hooks.hits)
	}
}

func TestInstrumentedNilInner(t *testing.T) {
	observability.Reset()
	c := NewInstrumented(nil)
	defer c.Close()

	if _, hit, err := c.Get(context.Background(), "frame:abc"); hit || err != nil {
		t.Errorf("nil inner should behave like NullCache, got hit=%v err=%v", hit, err)
	}
}

func TestKeyType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"http:profile:https://example.com/cpu.json", "http"},
		{"frame:deadbeef", "frame"},
		{"artifact:deadbeef", "artifact"},
		{"profile:42:artifact:deadbeef", "artifact"},
		{"profile:42:frame:deadbeef", "frame"},
		{"unscoped", "other"},
		{"", "other"},
	}
	for _, tt := range tests {
		if got := keyType(tt.key); got != tt.want {
			t.Errorf("keyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
