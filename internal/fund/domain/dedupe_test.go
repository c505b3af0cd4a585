package domain

import "testing"

func recordsNamed(names ...string) []*FundRecord {
	out := make([]*FundRecord, len(names))
	for i, n := range names {
		out[i] = &FundRecord{SchemeName: n, LaunchDate: "01-Jan-2010"}
	}
	return out
}

func names(records []*FundRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SchemeName
	}
	return out
}

func TestDeduplicateExactName(t *testing.T) {
	records := recordsNamed("Alpha Fund", "Alpha Fund", "Beta Fund")

	kept, removed := Deduplicate(records, DedupExactName)

	// 精确重名的所有出现位置全部移除
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if got := names(kept); len(got) != 1 || got[0] != "Beta Fund" {
		t.Errorf("kept = %v, want [Beta Fund]", got)
	}
}

func TestDeduplicateExactNameIsCaseSensitive(t *testing.T) {
	records := recordsNamed("Alpha Fund", "ALPHA FUND")

	kept, removed := Deduplicate(records, DedupExactName)
	if removed != 0 || len(kept) != 2 {
		t.Errorf("kept = %d, removed = %d, want 2 and 0", len(kept), removed)
	}
}

func TestDeduplicateCanonicalFirstSeen(t *testing.T) {
	records := recordsNamed("Alpha Fund", "ALPHA FUND", "alpha   fund!", "Beta Fund")

	kept, removed := Deduplicate(records, DedupCanonicalFirstSeen)

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if got := names(kept); len(got) != 2 || got[0] != "Alpha Fund" || got[1] != "Beta Fund" {
		t.Errorf("kept = %v, want [Alpha Fund, Beta Fund]", got)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	for _, policy := range []DedupPolicy{DedupExactName, DedupCanonicalFirstSeen} {
		kept, removed := Deduplicate(nil, policy)
		if len(kept) != 0 || removed != 0 {
			t.Errorf("policy %s: kept = %d, removed = %d, want 0 and 0", policy, len(kept), removed)
		}
	}
}
