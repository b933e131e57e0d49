// Package server exposes the mortgage calculator over HTTP: a JSON API, PDF
// export, Prometheus metrics and an embedded web form.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/report"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Options configures NewHandler. Zero values select defaults: the default
// body limit, version "dev", no cache and no rate limiting.
type Options struct {
	MaxBodySize int64
	Version     string
	// Currency is used when a request names none.
	Currency string
	Cache    ResultCache
	Limiter  *RateLimiter
	// Now stamps PDF reports; defaults to time.Now.
	Now func() time.Time
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	currency    string
	cache       ResultCache
	metrics     *metrics
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		logger:      logger,
		maxBodySize: opts.MaxBodySize,
		version:     strings.TrimSpace(opts.Version),
		currency:    opts.Currency,
		cache:       opts.Cache,
		metrics:     newMetrics(),
		now:         opts.Now,
	}
	if h.maxBodySize <= 0 {
		h.maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if h.version == "" {
		h.version = "dev"
	}
	if h.currency == "" {
		h.currency = constants.DefaultCurrency
	}
	if h.now == nil {
		h.now = time.Now
	}

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(logger, opts.Limiter, fn)
	}

	mux := http.NewServeMux()

	// Single loan calculation for the web form
	mux.Handle("/api/calculate", limited(h.handleCalculate))

	// PDF report for a single loan
	mux.Handle("/api/export/pdf", limited(h.handleExportPDF))

	// YAML scenario file upload, same format as the CLI
	mux.Handle("/api/scenarios", limited(h.handleScenarios))

	mux.HandleFunc("/api/currencies", h.handleCurrencies)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", h.metrics.handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type calculateRequest struct {
	Name     string               `json:"name"`
	Currency string               `json:"currency"`
	Loan     validation.LoanInput `json:"loan"`
}

type calculateResponse struct {
	Result   calculator.Result `json:"result"`
	CSV      string            `json:"csv"`
	Cached   bool              `json:"cached"`
	Duration string            `json:"duration"`
}

type scenariosResponse struct {
	Results  []calculator.Result `json:"results"`
	CSV      string              `json:"csv"`
	Warnings []string            `json:"warnings,omitempty"`
	Duration string              `json:"duration"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []*validation.FieldError `json:"fields,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	result, cached, err := h.calculate(r, req)
	if err != nil {
		h.respondCalculationError(w, err, "calculate", start, op)
		return
	}

	outcome := outcomeOK
	if cached {
		outcome = outcomeCached
	}
	h.metrics.observe("calculate", outcome, start)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Result:   result,
		CSV:      output.CsvString([]calculator.Result{result}),
		Cached:   cached,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportPDF"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodeRequest(w, r, op)
	if !ok {
		return
	}

	result, _, err := h.calculate(r, req)
	if err != nil {
		h.respondCalculationError(w, err, "export", start, op)
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, result, now); err != nil {
		h.metrics.observe("export", outcomeError, start)
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}
	h.metrics.observe("export", outcomeOK, start)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(now, 0)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write pdf response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	conf, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := conf.ValidateConfiguration()
	results, err := calculator.Calculate(h.logger, *conf)
	if err != nil {
		h.respondCalculationError(w, err, "scenarios", start, op)
		return
	}
	h.metrics.observe("scenarios", outcomeOK, start)

	if results == nil {
		results = []calculator.Result{}
	}
	h.writeJSON(w, http.StatusOK, scenariosResponse{
		Results:  results,
		CSV:      output.CsvString(results),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"default":    format.Symbol(h.currency),
		"currencies": format.Currencies,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (calculateRequest, bool) {
	var req calculateRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return req, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = "Mortgage"
	}
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = h.currency
	}
	if err := validation.ValidateCurrency(currency); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return req, false
	}
	req.Currency = format.Symbol(currency)
	return req, true
}

// calculate serves req from the cache when possible. Cache failures are
// logged and never fail the request.
func (h *handler) calculate(r *http.Request, req calculateRequest) (calculator.Result, bool, error) {
	const op = "server.calculate"

	var key string
	if h.cache != nil {
		canonical, err := json.Marshal(req)
		if err == nil {
			key = CacheKey("calc", canonical)
			data, hit, err := h.cache.Get(r.Context(), key)
			if err != nil {
				h.logger.Warn("cache lookup failed",
					zap.String("op", op),
					zap.String("key", key),
					zap.Error(err),
				)
			}
			var cached calculator.Result
			if hit && json.Unmarshal(data, &cached) == nil {
				return cached, true, nil
			}
		}
	}

	result, err := calculator.CalculateLoan(h.logger, req.Name, req.Currency, req.Loan)
	if err != nil {
		return calculator.Result{}, false, err
	}

	if key != "" {
		if data, err := json.Marshal(result); err == nil {
			if err := h.cache.Set(r.Context(), key, data); err != nil {
				h.logger.Warn("cache store failed",
					zap.String("op", op),
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}
	return result, false, nil
}

func (h *handler) respondCalculationError(w http.ResponseWriter, err error, endpoint string, start time.Time, op string) {
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		h.metrics.observe(endpoint, outcomeInvalid, start)
		h.logger.Debug("request rejected",
			zap.String("op", op),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Fields: fields})
		return
	}
	h.metrics.observe(endpoint, outcomeError, start)
	h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to calculate: %v", err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.String("op", op))
	} else {
		h.logger.Debug(msg, zap.String("op", op))
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
