package http

import (
	"net/url"
	"strconv"
	"strings"

	"investorportal/internal/core"
)

const (
	dashboardPath   = "/dashboard"
	commitmentsPath = "/investors/commitments/"
)

// PageLink is one entry of the pagination control.
type PageLink struct {
	Label   string
	Href    string
	Current bool
}

// Pager is the view model for the commitment pagination control.
// Previous and Next are nil when there is no such page.
type Pager struct {
	Previous *PageLink
	Pages    []PageLink
	Next     *PageLink
}

// newPager builds links for every page of page.TotalPages around the current
// one. Every link carries the active asset class filter. A non-positive
// TotalPages yields an empty pager.
func newPager(base string, page core.CommitmentPage, assetClass string) Pager {
	var p Pager
	current, totalPages := page.PageNumber, page.TotalPages
	if totalPages <= 0 {
		return p
	}

	p.Pages = make([]PageLink, 0, totalPages)
	for idx := 0; idx < totalPages; idx++ {
		p.Pages = append(p.Pages, PageLink{
			Label:   strconv.Itoa(idx + 1),
			Href:    pageHref(base, idx, assetClass),
			Current: idx == current,
		})
	}
	if page.HasPrevious() {
		p.Previous = &PageLink{Label: "Previous Page", Href: pageHref(base, current-1, assetClass)}
	}
	if page.HasNext() {
		p.Next = &PageLink{Label: "Next Page", Href: pageHref(base, current+1, assetClass)}
	}
	return p
}

// pageHref returns base with URL-encoded page and assetClass parameters.
func pageHref(base string, page int, assetClass string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("assetClass", core.NormalizeAssetClass(assetClass))
	return base + "?" + q.Encode()
}

// commitmentsHref is the path of an investor's commitment page.
func commitmentsHref(investorID string) string {
	return commitmentsPath + url.PathEscape(investorID)
}

// parsePage reads a zero-based page index. Missing, non-numeric and negative
// values all mean the first page.
func parsePage(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
