package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
	"github.com/vadim/social-pulse/internal/domain/check/policy"
	"github.com/vadim/social-pulse/internal/httpx/response"
)

// CheckPolicy defines the interface for API contract checks
type CheckPolicy interface {
	RunChecks(ctx context.Context) (*entity.Report, error)
	History(ctx context.Context, in policy.HistoryInput) ([]entity.Report, error)
	Report(ctx context.Context, id string) (*entity.Report, error)
}

// CheckHandler handles HTTP requests for check runs
type CheckHandler struct {
	policy CheckPolicy
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(p CheckPolicy) *CheckHandler {
	return &CheckHandler{policy: p}
}

// RegisterRoutes registers check routes
func (h *CheckHandler) RegisterRoutes(r chi.Router) {
	r.Route("/checks", func(r chi.Router) {
		r.Post("/run", h.Run())
		r.Get("/history", h.History())
		r.Get("/history/{reportId}", h.Get())
	})
}

// ReportsResponse represents a list of reports
type ReportsResponse struct {
	Reports []entity.Report `json:"reports"`
}

// Run handles POST /checks/run
func (h *CheckHandler) Run() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.policy.RunChecks(r.Context())
		if err != nil {
			handleCheckError(w, err)
			return
		}

		response.Created(w, report)
	}
}

// History handles GET /checks/history
func (h *CheckHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
				if limit > 100 {
					limit = 100
				}
			}
		}

		reports, err := h.policy.History(r.Context(), policy.HistoryInput{Limit: limit})
		if err != nil {
			handleCheckError(w, err)
			return
		}

		response.OK(w, ReportsResponse{Reports: reports})
	}
}

// Get handles GET /checks/history/{reportId}
func (h *CheckHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.policy.Report(r.Context(), chi.URLParam(r, "reportId"))
		if err != nil {
			handleCheckError(w, err)
			return
		}

		response.OK(w, report)
	}
}

func handleCheckError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrReportNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, entity.ErrRunInProgress):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
