// Package middleware provides reusable HTTP middleware for both services.
package middleware

import (
	"log"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// wrappedWriter captures the status code written by downstream handlers.
type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *wrappedWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger logs method, path, status code, duration, and the chi request id
// for every request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		reqID := chiMiddleware.GetReqID(r.Context())
		if reqID == "" {
			reqID = "-"
		}
		log.Printf("%s %s %d %s reqid=%s", r.Method, r.URL.Path, ww.statusCode, time.Since(start), reqID)
	})
}
