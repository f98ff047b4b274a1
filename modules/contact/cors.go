package contact

import (
	"net/http"
	"slices"
)

// applyCORS sets the CORS response headers for every intake response,
// including errors. The request Origin is echoed back only when it is on
// the allow-list; anything else gets the fixed fallback origin, never a
// reflection of the request. Only POST needs to be negotiable, and the
// only custom header the form client sends is Content-Type.
func (h *Handler) applyCORS(w http.ResponseWriter, r *http.Request) {
	allowed := h.fallbackOrigin
	if origin := r.Header.Get("Origin"); origin != "" && slices.Contains(h.allowedOrigins, origin) {
		allowed = origin
	}

	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Origin", allowed)
	hdr.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type")
}
