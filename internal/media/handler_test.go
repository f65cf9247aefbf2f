package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/memebin/service/internal/storage"
)

// fakeStorage is an in-memory object store.
type fakeStorage struct {
	objects map[string][]byte

	uploadErr  error
	presignErr error
	deleteErr  error
	existsErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) PresignedURL(_ context.Context, key string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "http://s3.local/memes-storage/" + key + "?signature=test", nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func newTestHandler() (http.Handler, *fakeStorage) {
	store := newFakeStorage()
	h := NewHandler(store, "memes-storage")
	return h.Routes(), store
}

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "image.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form content: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestLiveness(t *testing.T) {
	router, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["msg"] != "ok" {
		t.Fatalf("expected msg ok, got %v", body)
	}
}

func TestUploadStoresUnderRandomName(t *testing.T) {
	router, store := newTestHandler()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("jpeg bytes")))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var result UploadResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.BucketName != "memes-storage" {
		t.Fatalf("unexpected bucket: %q", result.BucketName)
	}
	if result.StoredName == "" || result.StoredName == "image.jpg" {
		t.Fatalf("stored name must be server-generated, got %q", result.StoredName)
	}
	if len(result.StoredName) != 36 {
		t.Fatalf("expected a 36-char uuid stored name, got %q", result.StoredName)
	}
	if string(store.objects[result.StoredName]) != "jpeg bytes" {
		t.Fatal("content must be stored under the generated name")
	}
}

func TestUploadGeneratesFreshNames(t *testing.T) {
	router, _ := newTestHandler()

	names := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, []byte("data")))
		if w.Code != http.StatusCreated {
			t.Fatalf("upload %d: expected 201, got %d", i, w.Code)
		}
		var result UploadResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("decode result: %v", err)
		}
		if names[result.StoredName] {
			t.Fatalf("stored name %q reused", result.StoredName)
		}
		names[result.StoredName] = true
	}
}

func TestUploadMissingFile(t *testing.T) {
	router, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestUploadTransportFailure(t *testing.T) {
	router, store := newTestHandler()
	store.uploadErr = fmt.Errorf("put object: %w", storage.ErrUnavailable)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("data")))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a transport failure, got %d", w.Code)
	}
}

func TestUploadUnclassifiedFailure(t *testing.T) {
	router, store := newTestHandler()
	store.uploadErr = fmt.Errorf("checksum mismatch")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, []byte("data")))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unclassified failure, got %d", w.Code)
	}
}

func TestFetchReturnsURL(t *testing.T) {
	router, store := newTestHandler()
	store.objects["abc-123"] = []byte("data")

	req := httptest.NewRequest(http.MethodGet, "/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var result URLResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.URL == "" {
		t.Fatal("expected a presigned url")
	}
}

func TestFetchAbsentObject(t *testing.T) {
	router, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/abracadabra", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	router, store := newTestHandler()
	store.existsErr = fmt.Errorf("stat object: %w", storage.ErrUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestRemoveDeletesObject(t *testing.T) {
	router, store := newTestHandler()
	store.objects["abc-123"] = []byte("data")

	req := httptest.NewRequest(http.MethodDelete, "/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
	if _, ok := store.objects["abc-123"]; ok {
		t.Fatal("object must be deleted")
	}
}

func TestRemoveAbsentObject(t *testing.T) {
	router, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/abracadabra", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
