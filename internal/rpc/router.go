// Package rpc exposes the portfolio service as named procedures over HTTP.
//
//	GET  /rpc/skills.list
//	GET  /rpc/skills.get?input={"id":3}
//	POST /rpc/skills.update   {"id":3,"proficiency_level":9}
//
// Every response is a JSON envelope: {"result":{"data":...}} on success,
// {"error":{"code","message","issues"}} on failure.
package rpc

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aTrapDeer/portfolio-backend/internal/portfolio"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

// BasePath prefixes every procedure URL.
const BasePath = "/rpc/"

const maxBodyBytes = 1 << 20

type handler struct {
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *handler) { h.logger = l }
}

// WithMetrics records per-procedure counters and latencies in m and serves
// them on /metrics.
func WithMetrics(m *Metrics) Option {
	return func(h *handler) { h.metrics = m }
}

// NewHandler routes every procedure of svc.
func NewHandler(svc *portfolio.Service, opts ...Option) http.Handler {
	h := &handler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	r := mux.NewRouter()
	for _, p := range procedures(svc) {
		r.Handle(BasePath+p.name, h.serve(p)).Methods(p.method())
	}
	if h.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no procedure at "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_SUPPORTED", r.Method+" is not supported for "+r.URL.Path)
	})

	return requestID(h.accessLog(r))
}

func (h *handler) serve(p procedure) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		status := h.dispatch(w, r, p)

		if h.metrics != nil {
			h.metrics.observe(p.name, status, time.Since(start))
		}
	})
}

func (h *handler) dispatch(w http.ResponseWriter, r *http.Request, p procedure) int {
	input, err := readInput(w, r, p)
	if err != nil {
		return h.fail(w, r, p, err)
	}

	data, err := p.call(r.Context(), input)
	if err != nil {
		return h.fail(w, r, p, err)
	}
	writeJSON(w, http.StatusOK, envelope{Result: &result{Data: data}})
	return http.StatusOK
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, p procedure, err error) int {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("procedure failed",
			"procedure", p.name,
			"request_id", RequestIDFrom(r.Context()),
			"error", err)
	}
	writeJSON(w, status, envelope{Error: body})
	return status
}

func readInput(w http.ResponseWriter, r *http.Request, p procedure) ([]byte, error) {
	if !p.mutation {
		return []byte(r.URL.Query().Get("input")), nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &schema.ValidationError{Issues: []schema.Issue{{Message: "request body too large"}}}
		}
		return nil, err
	}
	return body, nil
}
