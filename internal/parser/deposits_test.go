package parser

import (
	"testing"
	"time"
)

func TestParseDeposits_NamedColumns(t *testing.T) {
	t.Parallel()

	res := ParseDeposits(loadWorkbook(t, [][]interface{}{
		{"Reference", "Bank Date", "Amount", "Notes"},
		{"D-1", "2024-05-15", 230.0, "early"},
		{"D-2", "2024-06-10", 115.0, ""},
		{"D-3", "unknown", "oops", ""},
	}))

	if res.BankDate.Source != SourceAlias || res.BankDate.Index != 1 {
		t.Fatalf("BankDate=%+v", res.BankDate)
	}
	if res.Amount.Source != SourceAlias || res.Amount.Index != 2 {
		t.Fatalf("Amount=%+v", res.Amount)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("len(Rows)=%d", len(res.Rows))
	}
	if r := res.Rows[0]; !r.HasDate || !r.BankDate.Equal(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)) || r.Amount != 230 {
		t.Fatalf("row 0=%+v", r)
	}
	if r := res.Rows[2]; r.HasDate || r.Amount != 0 {
		t.Fatalf("row 2 should have no date and zero amount: %+v", r)
	}
}

func TestParseDeposits_PositionalFallback(t *testing.T) {
	t.Parallel()

	res := ParseDeposits(loadWorkbook(t, [][]interface{}{
		{"Posted", "Guest", "Total"},
		{"2024-05-20", "Smith", 100.0},
	}))
	if res.BankDate.Source != SourceFallback || res.BankDate.Index != 0 {
		t.Fatalf("BankDate=%+v", res.BankDate)
	}
	if res.Amount.Source != SourceFallback || res.Amount.Index != 2 {
		t.Fatalf("Amount=%+v", res.Amount)
	}
	if res.Rows[0].Amount != 100 {
		t.Fatalf("Amount=%v", res.Rows[0].Amount)
	}
}
