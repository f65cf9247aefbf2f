package meme

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Upload is an inbound file within a single request. It is consumed entirely
// by the create/update flow and never persisted.
type Upload struct {
	Content     io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// Reason identifies which validation check rejected an upload.
type Reason string

const (
	ReasonMissingContentType Reason = "missing_content_type"
	ReasonNotAnImage         Reason = "not_an_image"
	ReasonUnsupportedFormat  Reason = "unsupported_format"
	ReasonTooLarge           Reason = "too_large"
)

// ValidationError rejects an upload before any storage I/O happens.
// Input carries the offending value (the declared type, or the size in KB).
type ValidationError struct {
	Reason Reason
	Msg    string
	Input  any
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// HTTPStatus maps the rejection reason to its public status code.
func (e *ValidationError) HTTPStatus() int {
	if e.Reason == ReasonTooLarge {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusUnsupportedMediaType
}

const imagePrefix = "image/"

// Validator runs the upload validation pipeline.
type Validator struct {
	maxSize int64
	allowed map[string]struct{}
}

// NewValidator creates a Validator with the given size ceiling in bytes and
// allowed image subtypes (e.g. "png", "jpeg").
func NewValidator(maxSize int64, allowedTypes []string) *Validator {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}
	return &Validator{maxSize: maxSize, allowed: allowed}
}

// Validate runs the ordered checks against an upload and stops at the first
// failure. The order is a contract: each check has its own public error
// code, and the cheap type checks always run before the size ceiling.
func (v *Validator) Validate(up *Upload) error {
	if up.ContentType == "" {
		return &ValidationError{
			Reason: ReasonMissingContentType,
			Msg:    "file has no declared content type",
		}
	}

	if !strings.HasPrefix(up.ContentType, imagePrefix) {
		return &ValidationError{
			Reason: ReasonNotAnImage,
			Msg:    "you can only pin an image to memes",
			Input:  up.ContentType,
		}
	}

	if _, ok := v.allowed[up.ContentType[len(imagePrefix):]]; !ok {
		return &ValidationError{
			Reason: ReasonUnsupportedFormat,
			Msg:    "image format is not supported",
			Input:  up.ContentType,
		}
	}

	if up.Size > v.maxSize {
		return &ValidationError{
			Reason: ReasonTooLarge,
			Msg: fmt.Sprintf("image size should be at most %d MB, your image is %d KB",
				v.maxSize/(1024*1024), up.Size/1024),
			Input: up.Size / 1024,
		}
	}

	return nil
}
