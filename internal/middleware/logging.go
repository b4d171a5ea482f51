package middleware

import (
	"net/http"
	"time"

	"presyohan/pricelist/internal/logging"
)

type responseWriter struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) Header() http.Header { return rw.w.Header() }

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.w.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.w.WriteHeader(code)
}

// Logging emits one structured log line per request.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{w: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.WithFields(
				logging.Field{Key: logging.FieldRequestID, Value: GetRequestID(r)},
				logging.Field{Key: "method", Value: r.Method},
				logging.Field{Key: "path", Value: r.URL.Path},
				logging.Field{Key: "status", Value: rw.status},
				logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
				logging.Field{Key: "size", Value: rw.size},
			).Info("HTTP request")
		})
	}
}
