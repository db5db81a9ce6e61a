// Package server exposes the pre-approval service over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/loan-portal/internal/auth"
	"github.com/iwvelando/loan-portal/internal/metrics"
	"github.com/iwvelando/loan-portal/internal/output"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/internal/quote"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/loans"
	"github.com/iwvelando/loan-portal/pkg/mathutil"
	"github.com/iwvelando/loan-portal/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the application service the handlers call.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (preapproval.Document, error)
	Save(ctx context.Context, doc preapproval.Document) (preapproval.Document, error)
	Clone(ctx context.Context, id uuid.UUID) (preapproval.Document, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status preapproval.ApplicationStatus) (preapproval.Document, error)
	PreApprovalReport(ctx context.Context, docID, scenarioID uuid.UUID) (quote.PreApprovalReport, error)
	FHAReport(ctx context.Context, docID, scenarioID uuid.UUID) (quote.FHAReport, error)
	QuickQuote(ctx context.Context, docID, scenarioID uuid.UUID) (quote.QuickQuote, error)
	QuoteList(ctx context.Context, status preapproval.ApplicationStatus) ([]quote.Summary, error)
	Dashboard(ctx context.Context) (quote.Dashboard, error)
}

// envelope is the body of every API response.
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	StatusCode int         `json:"statusCode"`
}

// badRequest is a malformed request caught before the service is called.
type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }

type handler struct {
	svc         Service
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the pre-approval API.
// verifier may be nil, in which case every request is unauthenticated.
func NewHandler(logger *zap.Logger, svc Service, verifier *auth.Verifier, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{svc: svc, logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	router := mux.NewRouter()
	router.Use(h.instrument)
	router.Use(auth.Middleware(verifier, func(r *http.Request, err error) {
		logger.Debug("rejected bearer token",
			zap.String("op", "server.auth"),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}))

	const id = "{id:[0-9a-fA-F-]{36}}"
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", h.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/calculator/monthly-payment", h.handleMonthlyPayment).Methods(http.MethodGet)
	api.HandleFunc("/calculator/title-insurance", h.handleTitleInsurance).Methods(http.MethodGet)

	api.HandleFunc("/preapprovals", h.handleList(0)).Methods(http.MethodGet)
	api.HandleFunc("/preapprovals/preapproved", h.handleList(preapproval.StatusPreApproved)).Methods(http.MethodGet)
	api.HandleFunc("/preapprovals/in-escrow", h.handleList(preapproval.StatusInEscrow)).Methods(http.MethodGet)
	api.HandleFunc("/preapprovals/tbd", h.handleList(preapproval.StatusTBD)).Methods(http.MethodGet)
	api.HandleFunc("/preapprovals", h.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/preapprovals", h.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/preapprovals/"+id, h.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/preapprovals/"+id+"/clone", h.handleClone).Methods(http.MethodPost)
	api.HandleFunc("/preapprovals/"+id+"/status", h.handleUpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/preapprovals/"+id+"/scenarios/{scenarioId}/reports/{kind}", h.handleReport).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return router
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request counts and latency by route template.
func (h *handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "server.handleGet", err)
		return
	}
	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "server.handleGet", err)
		return
	}
	h.respond(w, http.StatusOK, doc)
}

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var doc preapproval.Document
	if err := h.decode(w, r, &doc); err != nil {
		h.fail(w, r, "server.handleSave", err)
		return
	}
	saved, err := h.svc.Save(r.Context(), doc)
	if err != nil {
		h.fail(w, r, "server.handleSave", err)
		return
	}
	h.respond(w, http.StatusOK, saved)
}

func (h *handler) handleClone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "server.handleClone", err)
		return
	}
	doc, err := h.svc.Clone(r.Context(), id)
	if err != nil {
		h.fail(w, r, "server.handleClone", err)
		return
	}
	h.respond(w, http.StatusOK, doc)
}

func (h *handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var ids []uuid.UUID
	if err := h.decode(w, r, &ids); err != nil {
		h.fail(w, r, "server.handleDelete", err)
		return
	}
	if err := h.svc.Delete(r.Context(), ids); err != nil {
		h.fail(w, r, "server.handleDelete", err)
		return
	}
	h.respond(w, http.StatusOK, true)
}

func (h *handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, "server.handleUpdateStatus", err)
		return
	}
	var body struct {
		Status preapproval.ApplicationStatus `json:"status"`
	}
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, "server.handleUpdateStatus", err)
		return
	}
	doc, err := h.svc.UpdateApplicationStatus(r.Context(), id, body.Status)
	if err != nil {
		h.fail(w, r, "server.handleUpdateStatus", err)
		return
	}
	h.respond(w, http.StatusOK, doc)
}

func (h *handler) handleList(status preapproval.ApplicationStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := status
		if raw := r.URL.Query().Get("status"); raw != "" && status == 0 {
			n, err := strconv.Atoi(raw)
			if err != nil {
				h.fail(w, r, "server.handleList", badRequest{msg: fmt.Sprintf("invalid status %q", raw)})
				return
			}
			filter = preapproval.ApplicationStatus(n)
		}
		rows, err := h.svc.QuoteList(r.Context(), filter)
		if err != nil {
			h.fail(w, r, "server.handleList", err)
			return
		}
		h.respond(w, http.StatusOK, rows)
	}
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, "server.handleDashboard", err)
		return
	}
	h.respond(w, http.StatusOK, dashboard)
}

// handleReport builds one report. The default response is the JSON envelope;
// ?format=pretty or ?format=yaml returns the rendered report as text.
func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	docID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	scenarioID, err := pathID(r, "scenarioId")
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	kind := mux.Vars(r)["kind"]
	if err := validation.ValidateReportKind(kind); err != nil {
		h.fail(w, r, op, badRequest{msg: err.Error()})
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" {
		if err := validation.ValidateOutputFormat(format); err != nil {
			h.fail(w, r, op, badRequest{msg: err.Error()})
			return
		}
	}

	var report interface{}
	switch kind {
	case constants.ReportPreApproval:
		report, err = h.svc.PreApprovalReport(r.Context(), docID, scenarioID)
	case constants.ReportFHA:
		report, err = h.svc.FHAReport(r.Context(), docID, scenarioID)
	case constants.ReportQuickQuote:
		report, err = h.svc.QuickQuote(r.Context(), docID, scenarioID)
	}
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	if format == "" || format == constants.OutputFormatJSON {
		h.respond(w, http.StatusOK, report)
		return
	}
	var buf bytes.Buffer
	if err := output.Write(&buf, format, report); err != nil {
		h.fail(w, r, op, err)
		return
	}
	contentType := "text/plain; charset=utf-8"
	if format == constants.OutputFormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) handleMonthlyPayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMonthlyPayment"
	q := r.URL.Query()
	amount, err := queryDecimal(q.Get("loanAmount"), "loanAmount")
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := queryDecimal(q.Get("rate"), "rate")
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	term, err := strconv.Atoi(q.Get("term"))
	if err != nil {
		h.fail(w, r, op, badRequest{msg: fmt.Sprintf("invalid term %q", q.Get("term"))})
		return
	}
	pi, err := loans.MonthlyPI(amount, rate, term)
	if err != nil {
		switch {
		case errors.Is(err, loans.ErrInvalidTerm):
			err = &quote.ValidationError{Field: "term", Message: err.Error(), Err: err}
		case errors.Is(err, loans.ErrRateOutOfRange):
			err = &quote.ValidationError{Field: "rate", Message: err.Error(), Err: err}
		}
		h.fail(w, r, op, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]decimal.Decimal{
		"principalAndInterest": mathutil.RoundCurrency(pi),
	})
}

func (h *handler) handleTitleInsurance(w http.ResponseWriter, r *http.Request) {
	amount, err := queryDecimal(r.URL.Query().Get("loanAmount"), "loanAmount")
	if err != nil {
		h.fail(w, r, "server.handleTitleInsurance", err)
		return
	}
	h.respond(w, http.StatusOK, map[string]decimal.Decimal{
		"titleInsurance": loans.TitleInsurance(amount),
	})
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest{msg: fmt.Sprintf("invalid %s %q", name, raw)}
	}
	return id, nil
}

func queryDecimal(raw, name string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, badRequest{msg: fmt.Sprintf("invalid %s %q", name, raw)}
	}
	return value, nil
}

// decode reads a JSON body no larger than the configured limit.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return badRequest{msg: fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize)}
		}
		return badRequest{msg: fmt.Sprintf("failed to decode request: %v", err)}
	}
	return nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var validationErr *quote.ValidationError
	var bad badRequest
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, quote.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr), errors.As(err, &bad):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	log := h.logger.Warn
	if status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("request failed",
		zap.String("op", op),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)

	h.writeJSON(w, status, envelope{
		Success:    false,
		Error:      err.Error(),
		StatusCode: status,
	})
}

func (h *handler) respond(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, envelope{Success: true, Data: data, StatusCode: status})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
