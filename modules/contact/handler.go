package contact

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/clientip"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/logger"
)

// Handler is the HTTP intake endpoint for contact form submissions.
type Handler struct {
	store          Store
	events         Events
	ipSalt         string
	allowedOrigins []string
	fallbackOrigin string
	log            *slog.Logger
}

// NewHandler creates the intake handler. The logger may be nil, in which
// case logs are discarded.
func NewHandler(store Store, ev Events, cfg Config, log *slog.Logger) *Handler {
	if store == nil {
		panic("contact: store is required")
	}
	if ev == nil {
		panic("contact: events is required")
	}
	if cfg.IPSalt == "" {
		panic("contact: ip salt is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		store:          store,
		events:         ev,
		ipSalt:         cfg.IPSalt,
		allowedOrigins: cfg.AllowedOrigins,
		fallbackOrigin: cfg.FallbackOrigin,
		log:            log.With(logger.Component("contact.handler")),
	}
}

type submitResponse struct {
	OK        bool   `json:"ok"`
	MessageID string `json:"messageId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.applyCORS(w, r)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	// Malformed bodies yield a zero Input, which fails field validation
	// below with the same 400 a missing field would.
	in := decodeInput(r)

	switch Validate(in) {
	case OutcomeDrop:
		// Masked success: bots must not learn they were detected.
		h.log.InfoContext(r.Context(), "honeypot triggered, dropping submission")
		writeJSON(w, http.StatusOK, submitResponse{OK: true})
		return
	case OutcomeReject:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		return
	}

	rec := Record{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
		Status:    StatusReceived,
		Meta: Meta{
			UserAgent: headerOrUnknown(r, "User-Agent"),
			Referer:   headerOrUnknown(r, "Referer"),
		},
		IPHash: HashIP(resolveIP(r), h.ipSalt),
	}

	ctx := r.Context()

	id, err := h.store.Append(ctx, rec)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to store contact message", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	// The record is already durable at this point; a publish failure still
	// surfaces as a 500 so the client retries and delivery is not lost.
	if err := h.events.RecordCreated(ctx, id, rec); err != nil {
		h.log.ErrorContext(ctx, "failed to publish record created event",
			logger.MessageID(id), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	h.log.InfoContext(ctx, "contact message accepted", logger.MessageID(id))
	writeJSON(w, http.StatusOK, submitResponse{OK: true, MessageID: id})
}

// decodeInput reads the submission from a JSON body or, for classic form
// posts, from urlencoded/multipart values. Decode errors are swallowed:
// the zero Input they leave behind is rejected by validation.
func decodeInput(r *http.Request) Input {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") || ct == "" {
		var in Input
		_ = json.NewDecoder(r.Body).Decode(&in)
		return in
	}

	_ = r.ParseMultipartForm(1 << 20)
	return Input{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Subject:  r.FormValue("subject"),
		Message:  r.FormValue("message"),
		Honeypot: r.FormValue("hp"),
	}
}

func headerOrUnknown(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return Unknown
}

func resolveIP(r *http.Request) string {
	if ip := clientip.GetIP(r); ip != "" {
		return ip
	}
	return Unknown
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
