package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"investorportal/internal/log"
)

// landingView is the data for landing.html.
type landingView struct {
	Title        string
	DashboardURL string
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, tmplLanding, landingView{
		Title:        "Investor Portal",
		DashboardURL: dashboardPath,
	})
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().
		Field("status", "ok").
		Field("uptime", time.Since(s.started).Round(time.Second).String()).
		Write(w)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ready := true
	checks := make(map[string]string)

	if len(s.templates) == len(pageTemplates) {
		checks["templates"] = "ok"
	} else {
		checks["templates"] = "failed: templates not loaded"
		ready = false
	}

	if err := s.upstream.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Readiness check failed",
			log.FieldOperation, log.OpPing,
			log.FieldError, err.Error())
		checks["upstream"] = fmt.Sprintf("failed: %v", err)
		ready = false
	} else {
		checks["upstream"] = "ok"
	}

	resp := NewJSONResponse().Field("checks", checks)
	if !ready {
		resp.Status(http.StatusServiceUnavailable).Field("status", "not_ready").Write(w)
		return
	}
	resp.Field("status", "ready").Write(w)
}

// handleMetrics provides request and security counters in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.tracer.GetMetrics()
	securityMetrics := s.detector.GetMetrics()

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_server_errors_total Responses with a 5xx status\n")
	fmt.Fprintf(w, "# TYPE http_server_errors_total counter\n")
	fmt.Fprintf(w, "http_server_errors_total %d\n\n", traceMetrics.ServerErrors)

	fmt.Fprintf(w, "# HELP http_last_response_microseconds Duration of the most recent request\n")
	fmt.Fprintf(w, "# TYPE http_last_response_microseconds gauge\n")
	fmt.Fprintf(w, "http_last_response_microseconds %d\n\n", traceMetrics.LastResponseTime)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	if s.rateLimiter != nil {
		rl := s.rateLimiter.GetMetrics()
		fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
		fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
		fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rl.TotalHits)

		fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
		fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
		fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", rl.ClientCount)
	}

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.started).Seconds())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	s.renderError(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}
