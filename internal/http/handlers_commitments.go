package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"investorportal/internal/core"
	"investorportal/internal/log"
	"investorportal/internal/portfolio"
)

// filterButton links to the first page of one asset class.
type filterButton struct {
	Label  string
	Total  string
	Href   string
	Active bool
}

type commitmentsView struct {
	Title        string
	InvestorName string
	DashboardURL string
	All          filterButton
	Filters      []filterButton
	Commitments  []core.Commitment
	Pager        Pager
}

func (s *Server) handleCommitments(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		s.handleNotFound(w, r)
		return
	}

	q := r.URL.Query()
	query := portfolio.CommitmentQuery{
		InvestorID: id,
		Page:       parsePage(q.Get("page")),
		Size:       portfolio.CommitmentPageSize,
		AssetClass: core.NormalizeAssetClass(q.Get("assetClass")),
	}
	fields := log.NewFields().WithCommitmentQuery(query.InvestorID, query.Page, query.AssetClass)

	page, err := s.upstream.ListCommitments(r.Context(), query)
	if err != nil {
		s.failUpstream(w, r, log.OpListCommitments, msgCommitmentsFetch, err, fields)
		return
	}

	log.FromContext(r.Context()).DebugContext(r.Context(), "Commitments loaded", append(fields.ToSlice(), log.FieldRows, len(page.Content))...)
	s.render(w, r, http.StatusOK, tmplCommitments, s.commitmentsView(id, query.AssetClass, page))
}

func (s *Server) commitmentsView(id, assetClass string, page core.CommitmentPage) commitmentsView {
	base := commitmentsHref(id)
	meta := page.Meta

	classes := meta.AssetClasses()
	filters := make([]filterButton, 0, len(classes))
	for _, class := range classes {
		total, _ := meta.TotalForAssetClass(class)
		filters = append(filters, filterButton{
			Label:  class,
			Total:  s.formatter.Digit(total),
			Href:   pageHref(base, 0, class),
			Active: class == assetClass,
		})
	}

	return commitmentsView{
		Title:        meta.InvestorName,
		InvestorName: meta.InvestorName,
		DashboardURL: dashboardPath,
		All: filterButton{
			Label:  "All",
			Total:  s.formatter.Digit(meta.TotalCommitment),
			Href:   pageHref(base, 0, core.AllAssetClasses),
			Active: assetClass == core.AllAssetClasses,
		},
		Filters:     filters,
		Commitments: page.Content,
		Pager:       newPager(base, page, assetClass),
	}
}

// pathParam returns the decoded URL parameter. chi matches against the raw
// path when the request has one, leaving escapes such as %2F in place.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
