package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim/social-pulse/internal/domain/check/entity"
	"github.com/vadim/social-pulse/internal/domain/check/policy"
)

type stubCheckPolicy struct {
	runErr error
	limit  int
}

func (s *stubCheckPolicy) RunChecks(ctx context.Context) (*entity.Report, error) {
	if s.runErr != nil {
		return nil, s.runErr
	}
	return &entity.Report{ID: "r1", Passed: true, Results: []entity.Result{{Name: "users", Success: true}}}, nil
}

func (s *stubCheckPolicy) History(ctx context.Context, in policy.HistoryInput) ([]entity.Report, error) {
	s.limit = in.Limit
	return []entity.Report{{ID: "r1"}}, nil
}

func (s *stubCheckPolicy) Report(ctx context.Context, id string) (*entity.Report, error) {
	if id != "r1" {
		return nil, entity.ErrReportNotFound
	}
	return &entity.Report{ID: id}, nil
}

func serveChecks(t *testing.T, p CheckPolicy, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewCheckHandler(p).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestCheckHandler_Run(t *testing.T) {
	rec := serveChecks(t, &stubCheckPolicy{}, http.MethodPost, "/checks/run")
	require.Equal(t, http.StatusCreated, rec.Code)

	var report entity.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "r1", report.ID)
	assert.True(t, report.Passed)

	rec = serveChecks(t, &stubCheckPolicy{runErr: entity.ErrRunInProgress}, http.MethodPost, "/checks/run")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckHandler_History(t *testing.T) {
	p := &stubCheckPolicy{}

	rec := serveChecks(t, p, http.MethodGet, "/checks/history?limit=500")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, p.limit)

	rec = serveChecks(t, p, http.MethodGet, "/checks/history/r1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveChecks(t, p, http.MethodGet, "/checks/history/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
