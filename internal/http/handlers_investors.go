package http

import (
	"net/http"

	"investorportal/internal/core"
	"investorportal/internal/log"
)

// missingTotal is shown when the data service reports no total for an investor.
const missingTotal = "n/a"

// investorRow is one table row of the dashboard. Every cell links to Href.
type investorRow struct {
	ID        string
	Name      string
	Type      string
	DateAdded string
	Country   string
	Total     string
	Href      string
}

type dashboardView struct {
	Title string
	Rows  []investorRow
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := s.upstream.ListInvestors(r.Context())
	if err != nil {
		s.failUpstream(w, r, log.OpListInvestors, msgDashboardFetch, err, log.NewFields())
		return
	}

	log.FromContext(r.Context()).DebugContext(r.Context(), "Investors loaded", log.FieldRows, len(page.Content))
	s.render(w, r, http.StatusOK, tmplDashboard, dashboardView{
		Title: "Investors",
		Rows:  s.investorRows(page),
	})
}

func (s *Server) investorRows(page core.InvestorPage) []investorRow {
	rows := make([]investorRow, 0, len(page.Content))
	for _, inv := range page.Content {
		total := missingTotal
		if v, ok := page.Meta.TotalFor(inv.ID); ok {
			total = s.formatter.Digit(v)
		}
		rows = append(rows, investorRow{
			ID:        inv.ID,
			Name:      inv.Name,
			Type:      inv.Type,
			DateAdded: s.formatter.Date(inv.DateAdded),
			Country:   inv.Country,
			Total:     total,
			Href:      commitmentsHref(inv.ID),
		})
	}
	return rows
}
