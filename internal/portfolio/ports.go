package portfolio

import (
	"context"

	"investorportal/internal/core"
)

// CommitmentPageSize is the fixed page size requested for commitment lists.
const CommitmentPageSize = 10

// CommitmentQuery selects one page of an investor's commitments.
type CommitmentQuery struct {
	InvestorID string
	Page       int
	Size       int
	AssetClass string // core.AllAssetClasses disables the filter
}

// Ports for outbound adapters.
type (
	// InvestorLister returns the investor list with per-investor totals.
	InvestorLister interface {
		ListInvestors(ctx context.Context) (core.InvestorPage, error)
	}

	// CommitmentLister returns one page of an investor's commitments.
	CommitmentLister interface {
		ListCommitments(ctx context.Context, q CommitmentQuery) (core.CommitmentPage, error)
	}

	// HealthChecker reports whether the upstream data service is reachable.
	HealthChecker interface {
		Ping(ctx context.Context) error
	}
)
