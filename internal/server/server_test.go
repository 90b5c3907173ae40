package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matzehuels/flamelens/internal/config"
	"github.com/matzehuels/flamelens/pkg/cache"
)

const testProfileJSON = `{
	"name": "root", "value": 100, "children": [
		{"name": "parse", "value": 60, "category": "app", "children": [
			{"name": "lex", "value": 30, "category": "app"}
		]},
		{"name": "emit", "value": 40, "category": "lib"}
	]
}`

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, c cache.Cache) *Server {
	t.Helper()
	return New(config.Default(), c, discardLogger())
}

func doRequest(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func uploadProfile(t *testing.T, s *Server, target string) profileInfo {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, target, strings.NewReader(testProfileJSON))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var info profileInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return info
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error response %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestCreateProfile(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	if info.ID == "" {
		t.Error("expected non-empty id")
	}
	if info.Name != "root" {
		t.Errorf("Name = %q, want root frame name", info.Name)
	}
	if info.Nodes != 4 {
		t.Errorf("Nodes = %d, want 4", info.Nodes)
	}
	if info.Depth != 2 {
		t.Errorf("Depth = %d, want 2", info.Depth)
	}
	if info.Total != 100 {
		t.Errorf("Total = %g, want 100", info.Total)
	}
}

func TestCreateProfileWithName(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles?name=cpu")
	if info.Name != "cpu" {
		t.Errorf("Name = %q, want cpu", info.Name)
	}
}

func TestCreateProfileInvalidJSON(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/profiles", strings.NewReader("{not json"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_PROFILE" {
		t.Errorf("code = %q, want INVALID_PROFILE", code)
	}
}

func TestCreateProfileTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxProfileBytes = 16
	s := New(cfg, nil, discardLogger())

	rec := doRequest(t, s, http.MethodPost, "/api/profiles", strings.NewReader(testProfileJSON))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if code := errorCode(t, rec); code != "PROFILE_TOO_LARGE" {
		t.Errorf("code = %q, want PROFILE_TOO_LARGE", code)
	}
}

func TestListProfiles(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/profiles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var empty struct {
		Profiles []profileInfo `json:"profiles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(empty.Profiles) != 0 {
		t.Errorf("expected empty list, got %d", len(empty.Profiles))
	}

	uploadProfile(t, s, "/api/profiles?name=a")
	uploadProfile(t, s, "/api/profiles?name=b")

	rec = doRequest(t, s, http.MethodGet, "/api/profiles", nil)
	var list struct {
		Profiles []profileInfo `json:"profiles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list.Profiles))
	}
	if list.Profiles[0].Name != "a" || list.Profiles[1].Name != "b" {
		t.Errorf("unexpected order: %q, %q", list.Profiles[0].Name, list.Profiles[1].Name)
	}
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got profileInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if got.ID != info.ID || got.Nodes != info.Nodes {
		t.Errorf("got %+v, want %+v", got, info)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/profiles/no-such-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "PROFILE_NOT_FOUND" {
		t.Errorf("code = %q, want PROFILE_NOT_FOUND", code)
	}
}

func TestDeleteProfile(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodDelete, "/api/profiles/"+info.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/profiles/"+info.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestFrame(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"blocks"`) {
		t.Error("frame response should contain blocks")
	}
	if !strings.Contains(body, `"parse"`) {
		t.Error("frame response should contain frame names")
	}
}

func TestFrameFocusAndSearch(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame?focus=parse&search=le", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"focus"`) {
		t.Error("focused frame response should report the focus id")
	}
	if !strings.Contains(body, `"search": "le"`) {
		t.Error("frame response should echo the search term")
	}
}

func TestFrameUnknownFocus(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame?focus=nope", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want unfocused render", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"focus"`) {
		t.Error("unknown focus should render unfocused")
	}
}

func TestFrameInvalidParams(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"bad width", "?width=abc", "INVALID_INPUT"},
		{"bad flip", "?flip=maybe", "INVALID_INPUT"},
		{"negative width", "?width=-10", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame"+tt.query, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Errorf("code = %q, want %q", code, tt.code)
			}
		})
	}
}

func TestFlameSVG(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/flame.svg?width=800&flip=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("response should be an SVG document")
	}
}

func TestFlameSVGInvalidStyle(t *testing.T) {
	s := newTestServer(t, nil)
	info := uploadProfile(t, s, "/api/profiles")

	rec := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/flame.svg?style=neon", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_STYLE" {
		t.Errorf("code = %q, want INVALID_STYLE", code)
	}
}

// countingCache wraps a Cache and counts hits and writes.
type countingCache struct {
	cache.Cache
	hits int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		c.hits++
	}
	return data, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestFlameSVGCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	cc := &countingCache{Cache: fc}
	s := newTestServer(t, cc)
	info := uploadProfile(t, s, "/api/profiles")

	first := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/flame.svg", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if cc.hits != 0 || cc.sets != 1 {
		t.Errorf("after first request: hits = %d, sets = %d, want 0 and 1", cc.hits, cc.sets)
	}

	second := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/flame.svg", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if cc.hits != 1 {
		t.Errorf("second request should hit the cache, hits = %d", cc.hits)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response should match the rendered one")
	}

	// Different options render separately.
	third := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/flame.svg?width=640", nil)
	if third.Code != http.StatusOK {
		t.Fatalf("third status = %d", third.Code)
	}
	if cc.hits != 1 || cc.sets != 2 {
		t.Errorf("after third request: hits = %d, sets = %d, want 1 and 2", cc.hits, cc.sets)
	}
}

func TestFrameCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	cc := &countingCache{Cache: fc}
	s := newTestServer(t, cc)
	info := uploadProfile(t, s, "/api/profiles")

	first := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	second := doRequest(t, s, http.MethodGet, "/api/profiles/"+info.ID+"/frame", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if cc.hits != 1 {
		t.Errorf("second frame request should hit the cache, hits = %d", cc.hits)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached frame should match the rendered one")
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No profiles loaded") {
		t.Error("empty index should mention missing profiles")
	}

	uploadProfile(t, s, "/api/profiles?name=checkout-service")
	rec = doRequest(t, s, http.MethodGet, "/", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "checkout-service") {
		t.Error("index should list the uploaded profile")
	}
	if !strings.Contains(body, "flame.svg") {
		t.Error("index should link to the rendered flame graph")
	}
}

func TestRunGracefulShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	s := New(cfg, nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil on graceful shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cpu.json")
	if err := os.WriteFile(path, []byte(testProfileJSON), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	s := newTestServer(t, nil)
	if err := s.Preload(context.Background(), []string{path}); err != nil {
		t.Fatalf("Preload error: %v", err)
	}
	if s.store.Len() != 1 {
		t.Fatalf("store has %d profiles, want 1", s.store.Len())
	}
	p := s.store.List()[0]
	if p.Name != "cpu" {
		t.Errorf("Name = %q, want cpu", p.Name)
	}
	if p.Tree.Len() != 4 {
		t.Errorf("tree has %d frames, want 4", p.Tree.Len())
	}
}

func TestPreloadMissingFile(t *testing.T) {
	s := newTestServer(t, nil)
	err := s.Preload(context.Background(), []string{t.TempDir() + "/missing.json"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"profiles/cpu.json", "cpu"},
		{"cpu.json", "cpu"},
		{"https://example.com/profiles/checkout.json?token=x", "checkout"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := sourceName(tt.source); got != tt.want {
			t.Errorf("sourceName(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
