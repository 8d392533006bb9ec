package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"offloadd/internal/offload"
	"offloadd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status() types.StatusResponse
	Describe() string
	AddResource(req types.AddResourceRequest) (bool, error)
	RemoveResource(id string) error
	EnableAutoOffload(device string, margin float64) error
	DisableAutoOffload() error
	Invoke(ctx context.Context, id string) error
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// ListResources godoc
	// @Summary  List registered resources
	// @Produce  json
	// @Success  200 {object} types.ResourcesResponse
	// @Router   /resources [get]
	r.Get("/resources", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ResourcesResponse{Resources: svc.Status().Resources}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	// Table godoc
	// @Summary  Fixed-width listing of registry contents
	// @Produce  plain
	// @Success  200 {string} string
	// @Router   /resources/table [get]
	r.Get("/resources/table", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(svc.Describe()))
	})

	// AddResource godoc
	// @Summary  Register a resource
	// @Accept   json
	// @Produce  json
	// @Param    request body types.AddResourceRequest true "resource"
	// @Success  201
	// @Router   /resources [post]
	r.Post("/resources", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.AddResourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "id and path are required")
			return
		}
		added, err := svc.AddResource(req)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !added {
			// Duplicate ids are a no-op; the original binding is unchanged.
			w.WriteHeader(http.StatusOK)
			return
		}
		logEvent().Str("resource", req.ID).Str("path", req.Path).Msg("resource added")
		w.WriteHeader(http.StatusCreated)
	})

	// RemoveResource godoc
	// @Summary  Remove a resource
	// @Param    id path string true "resource id"
	// @Success  204
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /resources/{id} [delete]
	r.Delete("/resources/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.RemoveResource(id); err != nil {
			if offload.IsNotFound(err) {
				writeJSONError(w, http.StatusNotFound, err.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logEvent().Str("resource", id).Msg("resource removed")
		w.WriteHeader(http.StatusNoContent)
	})

	// Invoke godoc
	// @Summary  Invoke a resource (placement happens transparently)
	// @Param    id path string true "resource id"
	// @Success  204
	// @Failure  404 {object} types.ErrorResponse
	// @Failure  503 {object} types.ErrorResponse
	// @Router   /resources/{id}/invoke [post]
	r.Post("/resources/{id}/invoke", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		start := time.Now()
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Invoke(joinedCtx, id); err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			if offload.IsNotFound(err) {
				writeJSONError(w, http.StatusNotFound, err.Error())
				return
			}
			if offload.IsDependencyUnavailable(err) {
				writeJSONError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			if he, ok := err.(HTTPError); ok {
				writeJSONError(w, he.StatusCode(), he.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logEvent().Str("resource", id).Dur("dur", time.Since(start)).Msg("invoke done")
		w.WriteHeader(http.StatusNoContent)
	})

	// EnableOffload godoc
	// @Summary  Enable auto offload against a device
	// @Accept   json
	// @Success  204
	// @Failure  400 {object} types.ErrorResponse
	// @Router   /offload/enable [post]
	r.Post("/offload/enable", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.EnableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Device) == "" {
			writeJSONError(w, http.StatusBadRequest, "device is required")
			return
		}
		if err := svc.EnableAutoOffload(req.Device, req.Margin); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logEvent().Str("device", req.Device).Float64("margin", req.Margin).Msg("auto offload enabled")
		w.WriteHeader(http.StatusNoContent)
	})

	// DisableOffload godoc
	// @Summary  Disable auto offload
	// @Success  204
	// @Router   /offload/disable [post]
	r.Post("/offload/disable", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DisableAutoOffload(); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Status godoc
	// @Summary  Registry status
	// @Produce  json
	// @Success  200 {object} types.StatusResponse
	// @Router   /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}
