package simplify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExplain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, "models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || !strings.Contains(req.Contents[0].Parts[0].Text, "linguagem popular") {
			t.Errorf("prompt not built: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "  A lei **muda** o imposto.  "}},
				}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-model", "test-key")
	summary, err := c.Explain(context.Background(), "texto técnico")
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if summary != "A lei muda o imposto." {
		t.Errorf("summary = %q", summary)
	}
}

func TestExplainUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-model", "test-key")
	if _, err := c.Explain(context.Background(), "texto"); err == nil {
		t.Fatal("expected error from upstream failure")
	}
}

func TestExplainNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-model", "test-key")
	if _, err := c.Explain(context.Background(), "texto"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestConfigured(t *testing.T) {
	if New("http://localhost", "m", "").Configured() {
		t.Error("client without key should not report configured")
	}
	if !New("http://localhost", "m", "k").Configured() {
		t.Error("client with key should report configured")
	}
}
