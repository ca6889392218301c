package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"investorportal/internal/log"
	"investorportal/internal/portfolio/api"
)

// User-facing messages for failed page loads. Details only go to the log.
const (
	msgDashboardFetch   = "Error fetching investor dashboard data"
	msgCommitmentsFetch = "An error occurred when fetching the data"
)

// errorView is the data for error.html.
type errorView struct {
	Title        string
	Status       int
	Message      string
	DashboardURL string
}

// upstreamStatus maps an upstream failure to the response status: a 404
// from the data service is passed through, everything else is a bad gateway.
func upstreamStatus(err error) int {
	if errors.Is(err, api.ErrHTTPStatus) && api.StatusOf(err) == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// upstreamErrorType classifies err for the log. Deadlines are reported as
// timeouts whatever layer raised them.
func upstreamErrorType(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return log.ErrorTypeTimeout
	}
	switch api.KindOf(err) {
	case api.KindNetwork:
		return log.ErrorTypeNetwork
	case api.KindHTTPStatus:
		if api.StatusOf(err) == http.StatusNotFound {
			return log.ErrorTypeNotFound
		}
		return log.ErrorTypeUpstream
	case api.KindDecode:
		return log.ErrorTypeDecode
	default:
		return log.ErrorTypeInternal
	}
}

// failUpstream logs err and renders the error page with msg.
func (s *Server) failUpstream(w http.ResponseWriter, r *http.Request, op, msg string, err error, fields log.LogFields) {
	var url string
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		url = apiErr.URL
	}
	s.events.LogUpstreamError(r.Context(), op, upstreamErrorType(err), url, api.StatusOf(err), err, fields)
	s.renderError(w, r, upstreamStatus(err), msg)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, tmplError, errorView{
		Title:        http.StatusText(status),
		Status:       status,
		Message:      msg,
		DashboardURL: dashboardPath,
	})
}
