package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

const commitmentPageJSON = `{
	"page_number": 1,
	"page_size": 10,
	"total_pages": 3,
	"total_records": 25,
	"content": [
		{"commitment_id": "c1", "commitment_asset_class": "Equity", "commitment_currency": "GBP", "commitment_amount": 15000000}
	],
	"content_meta": {
		"investor_name": "Ioo Gryffindor fund",
		"total_commitment": 150000000,
		"total_commitments_per_asset_class": {"Private Equity": 100, "Hedge Funds": 50}
	}
}`

func TestCommitmentPageDecode(t *testing.T) {
	var page CommitmentPage
	if err := json.Unmarshal([]byte(commitmentPageJSON), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.PageNumber != 1 || page.TotalPages != 3 || page.TotalRecords != 25 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].Amount != 15000000 {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
	if page.Meta.InvestorName != "Ioo Gryffindor fund" {
		t.Fatalf("investor name = %q", page.Meta.InvestorName)
	}
	want := []string{"Hedge Funds", "Private Equity"}
	if got := page.Meta.AssetClasses(); !reflect.DeepEqual(got, want) {
		t.Fatalf("asset classes = %v, want %v", got, want)
	}
}

func TestInvestorsMetaTotalFor(t *testing.T) {
	meta := InvestorsMeta{TotalCommitments: map[string]float64{"42": 1e6}}
	if v, ok := meta.TotalFor("42"); !ok || v != 1e6 {
		t.Fatalf("TotalFor(42) = %v, %v", v, ok)
	}
	if _, ok := meta.TotalFor("missing"); ok {
		t.Fatalf("expected missing id to report absence")
	}
	var empty InvestorsMeta
	if _, ok := empty.TotalFor("42"); ok {
		t.Fatalf("nil map must report absence")
	}
}

func TestPageNavigation(t *testing.T) {
	cases := []struct {
		page, total    int
		hasPrev, hasNx bool
	}{
		{0, 3, false, true},
		{1, 3, true, true},
		{2, 3, true, false},
		{0, 1, false, false},
		{0, 0, false, false},
	}
	for _, tc := range cases {
		p := CommitmentPage{PageNumber: tc.page, TotalPages: tc.total}
		if p.HasPrevious() != tc.hasPrev || p.HasNext() != tc.hasNx {
			t.Errorf("page=%d total=%d: prev=%v next=%v", tc.page, tc.total, p.HasPrevious(), p.HasNext())
		}
	}
}

func TestNormalizeAssetClass(t *testing.T) {
	if NormalizeAssetClass("") != AllAssetClasses {
		t.Fatal("empty filter should map to all")
	}
	if NormalizeAssetClass("Equity") != "Equity" {
		t.Fatal("explicit filter should be kept")
	}
}
