package history

import (
	"testing"
	"time"
)

func TestMerge_TimestampOrder(t *testing.T) {
	base := time.Unix(1_600_000_000, 0).UTC()
	a := []Record{
		{Kind: KindInvest, Timestamp: base.Add(2 * time.Minute)},
		{Kind: KindClaimTokens, Timestamp: base.Add(4 * time.Minute)},
	}
	b := []Record{
		{Kind: KindTokenTransfer, Timestamp: base},
		{Kind: KindRevenueShare, Timestamp: base.Add(3 * time.Minute)},
	}

	merged := Merge(a, b)
	want := []Kind{KindTokenTransfer, KindInvest, KindRevenueShare, KindClaimTokens}
	if len(merged) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(merged))
	}
	for i, kind := range want {
		if merged[i].Kind != kind {
			t.Errorf("position %d: expected %s, got %s", i, kind, merged[i].Kind)
		}
	}
}

func TestMerge_ChainOrderTieBreak(t *testing.T) {
	ts := time.Unix(1_600_000_000, 0).UTC()
	merged := Merge([]Record{
		{Kind: KindClaimTokens, Timestamp: ts, BlockNumber: 11, LogIndex: 0},
		{Kind: KindCancelInvestment, Timestamp: ts, BlockNumber: 10, LogIndex: 3},
		{Kind: KindInvest, Timestamp: ts, BlockNumber: 10, LogIndex: 1},
	})

	want := []Kind{KindInvest, KindCancelInvestment, KindClaimTokens}
	for i, kind := range want {
		if merged[i].Kind != kind {
			t.Errorf("position %d: expected %s, got %s", i, kind, merged[i].Kind)
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil, []Record{}); len(got) != 0 {
		t.Errorf("expected empty merge, got %d records", len(got))
	}
}
