// Package response provides shared JSON response helpers for HTTP handlers.
//
// Error bodies follow a uniform shape:
//
//	{"detail": [{"msg": "...", "loc": ["path", "id"], "type": "...", "input": ...}]}
//
// loc identifies the request segment at fault, type is a short
// machine-readable tag, and input echoes the offending value.
package response

import (
	"encoding/json"
	"net/http"
)

// Error type tags exposed to clients.
const (
	TypeMemeNotFound    = "meme_not_found"
	TypeImageValidation = "image_validation_error"
	TypeExternalError   = "external_server_error"
	TypeIntParsing      = "int_parsing"
	TypeMissing         = "missing"
	TypeBadLength       = "string_length"
	TypeOutOfRange      = "out_of_range"
)

// Detail is a single error item in the response body.
type Detail struct {
	Msg   string   `json:"msg"`
	Loc   []string `json:"loc,omitempty"`
	Type  string   `json:"type,omitempty"`
	Input any      `json:"input,omitempty"`
}

// ErrorBody is the standard error envelope. A fresh value is built per
// request; the detail slice is never shared between responses.
type ErrorBody struct {
	Detail []Detail `json:"detail"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 response with data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Error writes an error response with a single detail item.
func Error(w http.ResponseWriter, status int, d Detail) {
	JSON(w, status, ErrorBody{Detail: []Detail{d}})
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, d Detail) {
	Error(w, http.StatusNotFound, d)
}

// UnprocessableEntity writes a 422 response.
func UnprocessableEntity(w http.ResponseWriter, d Detail) {
	Error(w, http.StatusUnprocessableEntity, d)
}

// BadGateway writes a 502 response with a static message; raw transport
// detail never reaches the client.
func BadGateway(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadGateway, Detail{Msg: msg, Type: TypeExternalError})
}

// InternalError writes a 500 response with a static message.
func InternalError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, Detail{Msg: msg, Type: TypeExternalError})
}
