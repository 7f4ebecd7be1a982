package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
)

// Notice moves the pending notification of a GET request into the request
// context and clears its cookie. Other methods leave it for the next page.
func Notice(notices notice.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			if n, ok := notices.Consume(w, r); ok {
				r = r.WithContext(notice.NewContext(r.Context(), n))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore keeps rendered pages out of caches; they carry one-shot notifications.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
