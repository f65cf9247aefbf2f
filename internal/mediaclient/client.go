// Package mediaclient is the HTTP client the metadata service uses to talk
// to the internal media proxy. It owns the status-to-error mapping so the
// orchestrator can branch on sentinels instead of status codes.
package mediaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// ErrNotFound is returned when the media service reports no blob under the
// stored name.
var ErrNotFound = errors.New("media: file not found")

// ErrUnavailable is returned when the media service (or the object store
// behind it) is unreachable, erroring, or timed out.
var ErrUnavailable = errors.New("media: service unavailable")

// UploadResult identifies a freshly stored blob.
type UploadResult struct {
	BucketName string `json:"bucketName"`
	StoredName string `json:"storedName"`
}

// Client calls the media proxy service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the media service at baseURL. Request deadlines
// match the object-store discipline: a timed-out call surfaces as ErrUnavailable.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the file content as multipart form data and returns the
// bucket and server-generated stored name.
func (c *Client) Upload(ctx context.Context, content io.Reader, filename, contentType string) (*UploadResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	partHeader.Set("Content-Type", contentType)

	part, err := mw.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("create multipart: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, statusError(resp.StatusCode)
	}

	result := &UploadResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.StoredName == "" {
		return nil, fmt.Errorf("%w: upload response missing stored name", ErrUnavailable)
	}
	return result, nil
}

// ResolveURL returns a presigned download URL for the stored name.
func (c *Client) ResolveURL(ctx context.Context, storedName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+storedName, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode fetch response: %w", err)
	}
	return result.URL, nil
}

// Remove deletes the blob under the stored name.
func (c *Client) Remove(ctx context.Context, storedName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+storedName, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: media service returned %d", ErrUnavailable, code)
	}
}
