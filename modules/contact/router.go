package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/ratelimit"
)

// Router mounts the intake endpoint. When a limiter is provided, POST
// submissions are throttled per client IP; OPTIONS preflights bypass the
// limiter so throttling never breaks CORS negotiation.
func Router(h *Handler, limiter ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Handle("/contact", throttlePost(h, limiter))
	return r
}

func throttlePost(h http.Handler, limiter ratelimit.Limiter) http.Handler {
	if limiter == nil {
		return h
	}
	limited := ratelimit.Middleware(limiter, ratelimit.ByClientIP)(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
