// Package httpapi exposes a Dictionary over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ZaguanLabs/wortlex"
)

// dictionary is the subset of *wortlex.Dictionary the handler needs.
type dictionary interface {
	Query(ctx context.Context, q wortlex.LookupQuery) (*wortlex.LookupResult, error)
	SupportedLanguages(ctx context.Context) ([]string, error)
	ClearCache() error
	CacheStats() wortlex.CacheStats
}

// Handler serves dictionary lookups.
type Handler struct {
	dict     dictionary
	defaults wortlex.LookupOptions
	log      *slog.Logger
}

// NewHandler creates a Handler. defaults fill in query parameters the caller omits.
func NewHandler(dict dictionary, defaults wortlex.LookupOptions, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{dict: dict, defaults: defaults, log: logger.With("component", "httpapi")}
}

// Routes returns a mux with every endpoint registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lookup", h.Lookup)
	mux.HandleFunc("GET /languages", h.Languages)
	mux.HandleFunc("GET /cache/stats", h.Stats)
	mux.HandleFunc("DELETE /cache", h.Clear)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

// Lookup handles GET /lookup?text=&dir=&ui=&morpho=&family=&examples=.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.dict.Query(r.Context(), q)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) parseQuery(r *http.Request) (wortlex.LookupQuery, error) {
	values := r.URL.Query()

	dir := wortlex.DirectionDeRu
	if raw := values.Get("dir"); raw != "" {
		parsed, err := wortlex.ParseDirection(raw)
		if err != nil {
			return wortlex.LookupQuery{}, err
		}
		dir = parsed
	}

	opts := h.defaults
	if ui := values.Get("ui"); ui != "" {
		opts.UILanguage = ui
	}
	for name, dst := range map[string]*bool{
		"morpho":   &opts.EnableMorphology,
		"family":   &opts.FamilyFilter,
		"examples": &opts.EnableExamples,
	} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return wortlex.LookupQuery{}, &wortlex.ValidationError{Field: name, Message: "must be a boolean"}
		}
		*dst = v
	}

	return wortlex.LookupQuery{Text: values.Get("text"), Direction: dir, Options: opts}, nil
}

// Languages handles GET /languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.dict.SupportedLanguages(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, langs)
}

// Stats handles GET /cache/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dict.CacheStats())
}

// Clear handles DELETE /cache.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.dict.ClearCache(); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": wortlex.FullVersion(),
	})
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	payload := wortlex.ToPayload(err)
	if payload.Status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("code", string(payload.Code)),
			slog.String("error", err.Error()))
	}
	writeJSON(w, payload.Status, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
