package serializer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHttpReader_ReadWithContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		switch r.URL.Path {
		case "/webpack.config.json":
			_, _ = w.Write([]byte(`{"entry":"./x.js"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	reader := NewHttpReader(WithTotalTimeout(5 * time.Second))

	data, err := reader.ReadWithContext(context.Background(), server.URL+"/webpack.config.json")
	if err != nil {
		t.Fatalf("ReadWithContext() error = %v", err)
	}
	if string(data) != `{"entry":"./x.js"}` {
		t.Errorf("unexpected body %q", data)
	}

	_, err = reader.ReadWithContext(context.Background(), server.URL+"/missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestHttpReader_Headers(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	reader := NewHttpReader(WithUserAgent("packcfg/v1.2.0"), WithAccept("application/json"))
	if _, err := reader.ReadWithContext(context.Background(), server.URL); err != nil {
		t.Fatalf("ReadWithContext() error = %v", err)
	}
	if gotUA != "packcfg/v1.2.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if reader.UserAgent() != "packcfg/v1.2.0" {
		t.Errorf("UserAgent() = %q", reader.UserAgent())
	}
}

func TestHttpReader_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 16)))
	}))
	defer server.Close()

	if _, err := NewHttpReader(WithMaxBytes(16)).ReadWithContext(context.Background(), server.URL); err != nil {
		t.Errorf("body at the limit should be accepted: %v", err)
	}
	if _, err := NewHttpReader(WithMaxBytes(8)).ReadWithContext(context.Background(), server.URL); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestHttpReader_RejectsURL(t *testing.T) {
	tests := []string{"", "cm://ns/name", "file:///etc/passwd", "://bad"}
	for _, u := range tests {
		t.Run(u, func(t *testing.T) {
			if _, err := NewHttpReader().ReadWithContext(context.Background(), u); err == nil {
				t.Errorf("expected error for %q", u)
			}
		})
	}
}

func TestHttpReader_ClientTimeout(t *testing.T) {
	client := &http.Client{}
	NewHttpReader(WithClient(client), WithTotalTimeout(3*time.Second))
	if client.Timeout != 3*time.Second {
		t.Errorf("client timeout = %v", client.Timeout)
	}
}

func TestHttpReader_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHttpReader().ReadWithContext(ctx, server.URL); err == nil {
		t.Error("expected error for cancelled context")
	}
}
