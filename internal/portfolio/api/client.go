// Package api implements the portfolio ports against the investor data
// service's HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"investorportal/internal/core"
	"investorportal/internal/log"
	"investorportal/internal/portfolio"
)

const (
	investorsPath = "/api/v1/investors/"

	// maxBodyBytes bounds how much of an upstream body is decoded.
	maxBodyBytes = 8 << 20
)

// Client talks to the investor data service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// Ensure interface conformance
var (
	_ portfolio.InvestorLister   = (*Client)(nil)
	_ portfolio.CommitmentLister = (*Client)(nil)
	_ portfolio.HealthChecker    = (*Client)(nil)
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for upstream call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service rooted at baseURL. timeout bounds each
// call end to end; zero disables it.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    newHTTPClient(timeout),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// ListInvestors fetches the investor list and per-investor totals.
func (c *Client) ListInvestors(ctx context.Context) (core.InvestorPage, error) {
	var page core.InvestorPage
	err := c.getJSON(ctx, log.OpListInvestors, c.endpoint(investorsPath, nil), &page)
	return page, err
}

// ListCommitments fetches one page of an investor's commitments. A zero Size
// falls back to portfolio.CommitmentPageSize.
func (c *Client) ListCommitments(ctx context.Context, q portfolio.CommitmentQuery) (core.CommitmentPage, error) {
	size := q.Size
	if size <= 0 {
		size = portfolio.CommitmentPageSize
	}
	page := q.Page
	if page < 0 {
		page = 0
	}

	params := url.Values{}
	params.Set("size", strconv.Itoa(size))
	params.Set("page", strconv.Itoa(page))
	params.Set("asset_class", core.NormalizeAssetClass(q.AssetClass))

	path := investorsPath + url.PathEscape(q.InvestorID) + "/commitments"

	var out core.CommitmentPage
	err := c.getJSON(ctx, log.OpListCommitments, c.endpoint(path, params), &out)
	return out, err
}

// Ping calls the service's root healthcheck.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/", nil), nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: log.OpPing, URL: c.baseURL.String(), Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: log.OpPing, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindHTTPStatus, Op: log.OpPing, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return nil
}

// endpoint appends an already escaped path and the query to the base URL.
func (c *Client) endpoint(escapedPath string, query url.Values) string {
	target := strings.TrimRight(c.baseURL.String(), "/") + escapedPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) getJSON(ctx context.Context, op, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Upstream call completed",
		log.FieldComponent, log.ComponentUpstream,
		log.FieldOperation, op,
		log.FieldUpstreamURL, target,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &Error{Kind: KindHTTPStatus, Op: op, URL: target, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		// A body cut short by a cancelled context is a transport failure.
		if ctx.Err() != nil {
			return &Error{Kind: KindNetwork, Op: op, URL: target, Err: errors.Join(ctx.Err(), err)}
		}
		return &Error{Kind: KindDecode, Op: op, URL: target, Err: err}
	}
	return nil
}
