package storage

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestClassifyNil(t *testing.T) {
	if classify(nil) != nil {
		t.Fatal("nil must stay nil")
	}
}

func TestClassifyAbsentObject(t *testing.T) {
	for _, code := range []string{"NoSuchKey", "NoSuchBucket"} {
		err := classify(minio.ErrorResponse{Code: code, Message: "not found"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("code %s: expected ErrNotFound, got %v", code, err)
		}
	}
}

func TestClassifyOtherS3ErrorPassesThrough(t *testing.T) {
	err := classify(minio.ErrorResponse{Code: "AccessDenied", Message: "denied"})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		t.Fatalf("an S3 rejection is neither absent nor unreachable: %v", err)
	}
}

func TestClassifyConnectivityFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
		{"url error", &url.Error{Op: "Get", URL: "http://s3:9000", Err: io.EOF}},
		{"deadline", context.DeadlineExceeded},
		{"canceled", context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := classify(tc.err); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestClassifyUnknownErrorPassesThrough(t *testing.T) {
	plain := errors.New("something else")
	err := classify(plain)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		t.Fatalf("unknown errors must stay unclassified: %v", err)
	}
	if !errors.Is(err, plain) {
		t.Fatalf("original error must be preserved, got %v", err)
	}
}
