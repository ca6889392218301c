package core

import "sort"

// AllAssetClasses is the filter sentinel meaning "no asset class filter".
const AllAssetClasses = "all"

type (
	// Investor is a single investor record as served by the investor data service.
	Investor struct {
		ID          string `json:"investor_id"`
		Name        string `json:"investor_name"`
		Type        string `json:"investory_type"`
		Country     string `json:"investor_country"`
		DateAdded   string `json:"investor_date_added"`
		LastUpdated string `json:"investor_last_updated,omitempty"`
	}

	// Commitment is a capital pledge by an investor to an asset class.
	Commitment struct {
		ID         string  `json:"commitment_id"`
		AssetClass string  `json:"commitment_asset_class"`
		Currency   string  `json:"commitment_currency"`
		Amount     float64 `json:"commitment_amount"`
	}

	// PageResponse is the paginated envelope returned by every list endpoint.
	// M is the shape of the aggregate block, which differs per endpoint.
	PageResponse[T any, M any] struct {
		PageNumber   int `json:"page_number"`
		PageSize     int `json:"page_size"`
		TotalPages   int `json:"total_pages"`
		TotalRecords int `json:"total_records"`
		Content      []T `json:"content"`
		Meta         M   `json:"content_meta"`
	}

	// InvestorsMeta carries the per-investor commitment totals.
	InvestorsMeta struct {
		TotalCommitments map[string]float64 `json:"total_commitments"`
	}

	// CommitmentsMeta carries investor-level aggregates for a commitment page.
	CommitmentsMeta struct {
		InvestorName        string             `json:"investor_name"`
		TotalCommitment     float64            `json:"total_commitment"`
		TotalsPerAssetClass map[string]float64 `json:"total_commitments_per_asset_class"`
	}

	InvestorPage   = PageResponse[Investor, InvestorsMeta]
	CommitmentPage = PageResponse[Commitment, CommitmentsMeta]
)

// TotalFor returns the aggregate commitment of the investor and whether the
// upstream reported one.
func (m InvestorsMeta) TotalFor(investorID string) (float64, bool) {
	v, ok := m.TotalCommitments[investorID]
	return v, ok
}

// AssetClasses returns the asset classes present in the per-class totals,
// sorted by name.
func (m CommitmentsMeta) AssetClasses() []string {
	classes := make([]string, 0, len(m.TotalsPerAssetClass))
	for k := range m.TotalsPerAssetClass {
		classes = append(classes, k)
	}
	sort.Strings(classes)
	return classes
}

// TotalForAssetClass returns the aggregate for one asset class.
func (m CommitmentsMeta) TotalForAssetClass(class string) (float64, bool) {
	v, ok := m.TotalsPerAssetClass[class]
	return v, ok
}

// HasPrevious reports whether a page before the current one exists.
func (p PageResponse[T, M]) HasPrevious() bool {
	return p.PageNumber > 0
}

// HasNext reports whether a page after the current one exists.
func (p PageResponse[T, M]) HasNext() bool {
	return p.PageNumber < p.TotalPages-1
}

// NormalizeAssetClass maps an empty filter to AllAssetClasses.
func NormalizeAssetClass(class string) string {
	if class == "" {
		return AllAssetClasses
	}
	return class
}
