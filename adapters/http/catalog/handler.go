// Package catalog provides HTTP handlers for the resource and module collections.
package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/chunkinator/astroneer/adapters/metrics"
	"github.com/chunkinator/astroneer/domain/catalog"
	"github.com/chunkinator/astroneer/ports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Error codes written in the error envelope.
const (
	CodeNotFound         = "not_found"
	CodeAlreadyExists    = "already_exists"
	CodeValidationFailed = "validation_failed"
	CodeInvalidRequest   = "invalid_request"
	CodeInternalError    = "internal_error"
)

// ErrorResponse represents an error response body for swagger docs.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details for swagger docs.
type ErrorDetail struct {
	Code    string            `json:"code" example:"not_found"`
	Message string            `json:"message" example:"Resource Iron doesn't exist"`
	Details map[string]string `json:"details,omitempty"`
}

// ResourceList is the list envelope for resources.
type ResourceList struct {
	Resources []catalog.Resource `json:"resources"`
}

// ModuleList is the list envelope for modules.
type ModuleList struct {
	Modules []catalog.Module `json:"modules"`
}

// Handler serves the catalog API.
type Handler struct {
	store   ports.CatalogStore
	logger  zerolog.Logger
	metrics *metrics.Collector
	debug   atomic.Bool
}

// Deps contains dependencies for the catalog handler.
type Deps struct {
	Store   ports.CatalogStore
	Logger  zerolog.Logger
	Metrics *metrics.Collector // optional

	// Debug adds internal error text to 500 responses.
	Debug bool
}

// NewHandler creates a new catalog handler.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		store:   deps.Store,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
	h.debug.Store(deps.Debug)
	return h
}

// SetDebug switches internal error text in 500 responses on or off.
func (h *Handler) SetDebug(on bool) {
	h.debug.Store(on)
}

// Router returns the catalog router, to be mounted at the base path.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers catalog routes on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Dump)

	r.Route("/resource", func(r chi.Router) {
		r.Get("/", h.ListResources)
		r.Post("/", h.CreateResource)
		r.Get("/{name}", h.GetResource)
		r.Put("/{name}", h.UpdateResource)
		r.Delete("/{name}", h.DeleteResource)
	})

	r.Route("/module", func(r chi.Router) {
		r.Get("/", h.ListModules)
		r.Post("/", h.CreateModule)
		r.Get("/{name}", h.GetModule)
		r.Put("/{name}", h.UpdateModule)
		r.Delete("/{name}", h.DeleteModule)
	})
}

// Dump returns every collection verbatim.
//
//	@Summary		Dump the store
//	@Description	Returns every collection as held in memory, for development
//	@Tags			Default
//	@Produce		json
//	@Success		200	{object}	catalog.Snapshot	"All collections"
//	@Router			/ [get]
func (h *Handler) Dump(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// nameParam returns the decoded {name} path segment.
// chi routes on RawPath when one is set, leaving the segment escaped.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// writeStoreError maps domain errors onto the error envelope.
// subject is the name the failed guard was checking.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, kind, subject string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, kind+" "+subject+" doesn't exist")
	case errors.Is(err, catalog.ErrConflict):
		writeError(w, http.StatusBadRequest, CodeAlreadyExists, kind+" "+subject+" already exists")
	case errors.Is(err, catalog.ErrInvalid):
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	default:
		h.internalError(w, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("catalog request failed")
	msg := "Internal server error"
	if h.debug.Load() {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, CodeInternalError, msg)
}

func (h *Handler) publishCounts(r *http.Request, collection, op string) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordMutation(collection, op)
	h.metrics.SetCounts(h.store.Counts(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeErrorDetails(w, status, code, message, nil)
}

func writeErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

func isConflict(err error) bool {
	return errors.Is(err, catalog.ErrConflict)
}
