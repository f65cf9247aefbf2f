package mediaclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadSendsMultipartAndDecodesResult(t *testing.T) {
	var gotFilename, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(UploadResult{BucketName: "memes-storage", StoredName: "abc-123"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Upload(context.Background(), strings.NewReader("jpeg bytes"), "pic.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.StoredName != "abc-123" || result.BucketName != "memes-storage" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gotFilename != "pic.jpg" {
		t.Fatalf("expected filename pic.jpg, got %q", gotFilename)
	}
	if gotContentType != "image/jpeg" {
		t.Fatalf("expected declared content type forwarded, got %q", gotContentType)
	}
	if string(gotBody) != "jpeg bytes" {
		t.Fatalf("expected content forwarded, got %q", gotBody)
	}
}

func TestUploadMapsGatewayStatusToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Upload(context.Background(), strings.NewReader("x"), "pic.jpg", "image/jpeg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUploadConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := New(srv.URL)
	_, err := c.Upload(context.Background(), strings.NewReader("x"), "pic.jpg", "image/jpeg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestResolveURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/abc-123" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"http://s3.local/memes-storage/abc-123?signature=test"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	url, err := c.ResolveURL(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(url, "abc-123") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestResolveURLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ResolveURL(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Remove(context.Background(), "abc-123"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/abc-123" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestRemoveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Remove(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
