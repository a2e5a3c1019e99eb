package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"adminui/internal/model"
)

func TestCachePersists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "summaries.json")
	c := NewCacheAt(p)
	if _, ok := c.Get("m", "prompt"); ok {
		t.Fatal("empty cache hit")
	}
	c.Put("m", "prompt", "summary")
	again := NewCacheAt(p)
	if s, ok := again.Get("m", "prompt"); !ok || s != "summary" {
		t.Fatalf("reload: %q %v", s, ok)
	}
	if _, ok := again.Get("other-model", "prompt"); ok {
		t.Fatal("key must include the model")
	}
}

func TestSummarizeUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  two members  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("k", srv.URL, "m", 5*time.Second).WithCache(NewCacheAt(filepath.Join(t.TempDir(), "c.json")))
	ms := []model.Member{{ID: "1", Name: "Aaron Miles", Role: "member"}, {ID: "2", Name: "Zoe Park", Role: "admin"}}
	for i := 0; i < 2; i++ {
		s, err := c.Summarize(context.Background(), ms)
		if err != nil {
			t.Fatal(err)
		}
		if s != "two members" {
			t.Fatalf("summary: %q", s)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one API call, got %d", calls.Load())
	}
}
