// Package media implements the internal media proxy service: a thin HTTP
// layer that stores, resolves, and deletes blobs in an S3-compatible bucket.
//
// Objects are stored under server-generated random names, never under the
// client-supplied filename, so a stored name can never collide with or
// overwrite another upload and never carries path segments.
package media

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/memebin/service/internal/response"
	"github.com/memebin/service/internal/storage"
)

// UploadResult is the body returned after a successful upload.
type UploadResult struct {
	BucketName string `json:"bucketName"`
	StoredName string `json:"storedName"`
}

// URLResult is the body returned when resolving a stored name.
type URLResult struct {
	URL string `json:"url"`
}

// Handler holds HTTP handlers for the media proxy endpoints.
type Handler struct {
	store  storage.Storage
	bucket string
}

// NewHandler creates a media Handler backed by the given object store.
func NewHandler(store storage.Storage, bucket string) *Handler {
	return &Handler{store: store, bucket: bucket}
}

// Routes returns the media proxy router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Liveness)
	r.Post("/", h.Upload)
	r.Get("/{storedName}", h.Fetch)
	r.Delete("/{storedName}", h.Remove)
	return r
}

// Liveness reports that the service is up.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"msg": "ok"})
}

// Upload stores the multipart "file" part under a fresh random name and
// returns the bucket and stored name.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		response.UnprocessableEntity(w, response.Detail{
			Msg:  "file is required",
			Loc:  []string{"body", "file"},
			Type: response.TypeMissing,
		})
		return
	}
	defer file.Close()

	storedName := uuid.NewString()
	contentType := header.Header.Get("Content-Type")

	if err := h.store.Upload(r.Context(), storedName, file, header.Size, contentType); err != nil {
		h.writeStorageError(w, "upload", err)
		return
	}

	response.Created(w, UploadResult{BucketName: h.bucket, StoredName: storedName})
}

// Fetch resolves a stored name to a presigned, time-limited URL.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	storedName := chi.URLParam(r, "storedName")

	exists, err := h.store.Exists(r.Context(), storedName)
	if err != nil {
		h.writeStorageError(w, "stat", err)
		return
	}
	if !exists {
		response.NotFound(w, response.Detail{Msg: "file not exists", Input: storedName})
		return
	}

	url, err := h.store.PresignedURL(r.Context(), storedName)
	if err != nil {
		h.writeStorageError(w, "presign", err)
		return
	}

	response.OK(w, URLResult{URL: url})
}

// Remove deletes the object at the stored name. Removing an already-absent
// object reports 404; the delete itself is best-effort at the store layer.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	storedName := chi.URLParam(r, "storedName")

	exists, err := h.store.Exists(r.Context(), storedName)
	if err != nil {
		h.writeStorageError(w, "stat", err)
		return
	}
	if !exists {
		response.NotFound(w, response.Detail{Msg: "file not exists", Input: storedName})
		return
	}

	if err := h.store.Delete(r.Context(), storedName); err != nil {
		h.writeStorageError(w, "delete", err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// writeStorageError maps a classified storage error to the public outcome:
// transport failures are 502, everything else is an unclassified 500.
func (h *Handler) writeStorageError(w http.ResponseWriter, op string, err error) {
	log.Printf("media: %s failed: %v", op, err)
	if errors.Is(err, storage.ErrUnavailable) {
		response.BadGateway(w, "object store is not available")
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		response.NotFound(w, response.Detail{Msg: "file not exists"})
		return
	}
	response.InternalError(w, "unknown error during request processing")
}
