// Package chi exposes the plan finder over HTTP. Routes are registered on
// a chi router; domain errors map to statuses through an ordered handler
// chain.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bizradar/planfinder/internal/domain"
	"github.com/bizradar/planfinder/internal/domain/search/criteria"
	"github.com/bizradar/planfinder/internal/domain/search/sortspec"
	finderuc "github.com/bizradar/planfinder/internal/usecase/finder"
	healthuc "github.com/bizradar/planfinder/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	finder        *finderuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(finder *finderuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		finder: finder,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPlanNotFound, http.StatusNotFound, codePlanNotFound),
		sentinelHandler(domain.ErrInvalidSortToken, http.StatusUnprocessableEntity, codeInvalidSort),
		sentinelHandler(domain.ErrValidation, http.StatusUnprocessableEntity, codeValidationFailed),
		sentinelHandler(domain.ErrBackendTimeout, http.StatusGatewayTimeout, codeBackendTimeout),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusServiceUnavailable, codeBackendUnavailable),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", s.SearchPlans)
		r.Get("/plans/random", s.RandomPlan)
		r.Get("/plans/{planID}", s.GetPlan)
	})
}

// GetPlan handles GET /api/v1/plans/{planID}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")

	p, err := s.finder.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planToResponse(&p))
}

// RandomPlan handles GET /api/v1/plans/random.
func (s *Server) RandomPlan(w http.ResponseWriter, r *http.Request) {
	p, ok, err := s.finder.Random(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, codeNoPlans, "no plans available")
		return
	}

	writeJSON(w, http.StatusOK, planToResponse(&p))
}

// SearchPlans handles GET /api/v1/plans.
func (s *Server) SearchPlans(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	plans, total, err := s.finder.Search(r.Context(), c)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]PlanResponse, len(plans))
	for i := range plans {
		items[i] = planToResponse(&plans[i])
	}

	resp := SearchResponse{
		Items:   items,
		Total:   total,
		Page:    c.Page(),
		PerPage: c.PerPage(),
	}
	if sort := c.Sort(); !sort.IsZero() {
		resp.Sort = sort.Token()
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// criteriaFromQuery builds validated search criteria from URL query
// parameters. Unknown sort tokens and malformed numbers surface as
// domain errors so the handler chain maps them to 422.
func criteriaFromQuery(r *http.Request) (criteria.Criteria, error) {
	q := r.URL.Query()

	p := criteria.Params{
		Keyword:             q.Get("q"),
		Industry:            q.Get("industry"),
		Sentiment:           q.Get("sentiment"),
		TechnologyStack:     q.Get("technology_stack"),
		GeographicRelevance: q.Get("geographic_relevance"),
	}

	var err error
	if p.MarketSizeMin, err = queryFloat(q.Get("market_size_min"), "market_size_min"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.RequiredCapitalMax, err = queryFloat(q.Get("required_capital_max"), "required_capital_max"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.TimeToMarketMax, err = queryFloat(q.Get("time_to_market_max"), "time_to_market_max"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.Page, err = queryInt(q.Get("page"), "page"); err != nil {
		return criteria.Criteria{}, err
	}
	if p.PerPage, err = queryInt(q.Get("per_page"), "per_page"); err != nil {
		return criteria.Criteria{}, err
	}

	if token := q.Get("sort"); token != "" {
		if p.Sort, err = sortspec.Parse(token); err != nil {
			return criteria.Criteria{}, err
		}
	}

	// criteria.New rejections already carry domain.ErrValidation.
	return criteria.New(p)
}

func queryFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, name)
	}
	return &v, nil
}

func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPlanNotFound,
		domain.ErrInvalidSortToken,
		domain.ErrValidation,
		domain.ErrBackendTimeout,
		domain.ErrBackendUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
