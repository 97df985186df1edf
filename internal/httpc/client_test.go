package httpc

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPost_SendsBodyAndContentType(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(200)
	}))
	defer srv.Close()

	resp, err := Post(srv.URL, "application/json", []byte(`{"preset":"720p"}`))
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	resp.Body.Close()

	if string(gotBody) != `{"preset":"720p"}` {
		t.Errorf("Server received body %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("Server received content type %q", gotContentType)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := Get(srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("Expected ok, got %q", body)
	}
}

func TestNewClient_SetsTimeout(t *testing.T) {
	c := NewClient(3 * time.Second)
	if c.Timeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %v", c.Timeout)
	}
}
