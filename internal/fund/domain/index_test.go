package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func combinedFixture() []CombinedRecord {
	fund := func(name string) Fund {
		return Fund{SchemeName: name, CanonicalName: Key(name)}
	}
	rate := &BrokerageRate{
		SchemeName:    "Alpha Fund",
		CanonicalName: Key("Alpha Fund"),
		Approved:      true,
		FirstYearBase: decimal.NewFromFloat(1.25),
	}
	return []CombinedRecord{
		{Fund: fund("Alpha Fund"), Rate: rate},
		{Fund: fund("Alpha Fund II")},
		{Fund: fund("SBI Bluechip Fund")},
		{Fund: fund("HDFC Equity Growth Fund")},
		{Fund: fund("HDFC Equity Fund")},
	}
}

func TestIndexSearchExactFirst(t *testing.T) {
	idx := NewIndex(combinedFixture())

	got := idx.Search("Alpha Fund", 10)
	if len(got) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(got))
	}
	// 精确命中永远排在子串命中之前
	if got[0].Fund.SchemeName != "Alpha Fund" {
		t.Errorf("results[0] = %q, want %q", got[0].Fund.SchemeName, "Alpha Fund")
	}
	if got[1].Fund.SchemeName != "Alpha Fund II" {
		t.Errorf("results[1] = %q, want %q", got[1].Fund.SchemeName, "Alpha Fund II")
	}
	if got[0].Rate == nil || !got[0].Rate.FirstYearBase.Equal(decimal.NewFromFloat(1.25)) {
		t.Error("exact hit should carry its joined brokerage rate")
	}
	if got[1].Rate != nil {
		t.Error("fund without matching rate should have nil Rate")
	}
}

func TestIndexSearchSubstring(t *testing.T) {
	idx := NewIndex(combinedFixture())

	got := idx.Search("hdfc equity", 10)
	if len(got) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(got))
	}
	// 无精确命中时按键序返回子串命中
	if got[0].Fund.SchemeName != "HDFC Equity Fund" {
		t.Errorf("results[0] = %q, want %q", got[0].Fund.SchemeName, "HDFC Equity Fund")
	}
	if got[1].Fund.SchemeName != "HDFC Equity Growth Fund" {
		t.Errorf("results[1] = %q, want %q", got[1].Fund.SchemeName, "HDFC Equity Growth Fund")
	}
}

func TestIndexSearchNormalizesQuery(t *testing.T) {
	idx := NewIndex(combinedFixture())

	got := idx.Search("  SBI -- Bluechip   FUND ", 10)
	if len(got) != 1 || got[0].Fund.SchemeName != "SBI Bluechip Fund" {
		t.Errorf("results = %v, want exactly SBI Bluechip Fund", names2(got))
	}
}

func TestIndexSearchLimit(t *testing.T) {
	idx := NewIndex(combinedFixture())

	got := idx.Search("fund", 2)
	if len(got) != 2 {
		t.Errorf("len(results) = %d, want 2", len(got))
	}
	if res := idx.Search("fund", 0); res != nil {
		t.Errorf("limit 0 should return nil, got %v", names2(res))
	}
}

func TestIndexSearchNoDuplicates(t *testing.T) {
	records := combinedFixture()
	// 同一规约键出现两条记录
	records = append(records, CombinedRecord{Fund: Fund{SchemeName: "Alpha Fund", CanonicalName: Key("Alpha Fund")}})
	idx := NewIndex(records)

	got := idx.Search("Alpha Fund", 10)
	if len(got) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(got))
	}
	// 两条精确命中都出现，且不会在子串阶段重复
	exact := 0
	for _, rec := range got {
		if rec.Fund.CanonicalName == Key("Alpha Fund") {
			exact++
		}
	}
	if exact != 2 {
		t.Errorf("exact hits = %d, want 2", exact)
	}
}

func TestIndexSearchEmptyQuery(t *testing.T) {
	idx := NewIndex(combinedFixture())
	if got := idx.Search("  --  ", 10); got != nil {
		t.Errorf("results = %v, want nil for empty normalized query", names2(got))
	}
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	if idx.Len() != 0 {
		t.Error("nil index Len() should be 0")
	}
	if got := idx.Search("anything", 10); got != nil {
		t.Error("nil index Search() should return nil")
	}
}

func names2(records []CombinedRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Fund.SchemeName
	}
	return out
}
