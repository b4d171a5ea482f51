package middleware

import (
	"net/http"
	"runtime/debug"

	"presyohan/pricelist/internal/logging"
)

// Recover converts handler panics into 500 responses.
func Recover(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithFields(
						logging.Field{Key: logging.FieldRequestID, Value: GetRequestID(r)},
						logging.Field{Key: "panic", Value: rec},
						logging.Field{Key: "stack", Value: string(debug.Stack())},
					).Error("Recovered from handler panic")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
