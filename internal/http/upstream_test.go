package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investorportal/internal/log"
	"investorportal/internal/portfolio/api"
)

func newDataService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/v1/investors/{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"page_number": 0, "page_size": 10, "total_pages": 1, "total_records": 1,
			"content": [{"investor_id": "1", "investor_name": "Ioo Gryffindor fund", "investory_type": "fund manager",
				"investor_country": "Singapore", "investor_date_added": "2000-07-06"}],
			"content_meta": {"total_commitments": {"1": 11100000000}}
		}`))
	})
	mux.HandleFunc("/api/v1/investors/{id}/commitments", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, `{"detail":"Investor not found"}`, http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("size") != "10" || q.Get("page") != "0" || q.Get("asset_class") != "Infrastructure" {
			http.Error(w, "unexpected query "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{
			"page_number": 0, "page_size": 10, "total_pages": 1, "total_records": 1,
			"content": [{"commitment_id": "7", "commitment_asset_class": "Infrastructure", "commitment_currency": "GBP", "commitment_amount": 2000000}],
			"content_meta": {"investor_name": "Ioo Gryffindor fund", "total_commitment": 3000000,
				"total_commitments_per_asset_class": {"Hedge Funds": 1000000, "Infrastructure": 2000000}}
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newUpstreamServer(t *testing.T, baseURL string) *Server {
	t.Helper()
	client, err := api.New(baseURL, 2*time.Second)
	require.NoError(t, err)
	srv, err := NewServer(Options{Logger: log.Discard()}, client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func TestPagesAgainstDataService(t *testing.T) {
	srv := newUpstreamServer(t, newDataService(t).URL)

	rr := get(t, srv, "/dashboard")
	require.Equal(t, http.StatusOK, rr.Code)
	rows := findAll(parseHTML(t, rr.Body.String()), byClass("tr", "investor-row"))
	require.Len(t, rows, 1)
	assert.Equal(t, "1 Ioo Gryffindor fund fund manager July 6, 2000 Singapore 11.1B", textOf(rows[0]))

	rr = get(t, srv, "/investors/commitments/1?assetClass=Infrastructure")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	doc := parseHTML(t, rr.Body.String())
	commitments := findAll(doc, byClass("tr", "commitment-row"))
	require.Len(t, commitments, 1)
	assert.Equal(t, "7 Infrastructure GBP 2.00M", textOf(commitments[0]))
	assert.Len(t, findAll(doc, byClass("a", "filter")), 3)

	rr = get(t, srv, "/investors/commitments/99")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "An error occurred when fetching the data")

	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestPagesWithDataServiceDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	baseURL := down.URL
	down.Close()

	srv := newUpstreamServer(t, baseURL)

	rr := get(t, srv, "/dashboard")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error fetching investor dashboard data")
	assert.Empty(t, findAll(parseHTML(t, rr.Body.String()), byClass("tr", "investor-row")))

	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/readyz").Code)
}
