package parser

import "testing"

func TestParseTransactions_SumsNumericColumnsOnly(t *testing.T) {
	t.Parallel()

	res := ParseTransactions(loadWorkbook(t, [][]interface{}{
		{"Date", "Description", "Amount", "Fee", "Ref"},
		{"2024-06-01", "Room 101", 5000.0, 500.0, 1001},
		{"2024-06-02", "Room 102", 4000.0, nil, "ABC"},
		{"2024-06-03", "Room 103", 2000.0, nil, 1003},
	}))

	if res.Total != 11500 {
		t.Fatalf("Total=%v, want 11500", res.Total)
	}
	if len(res.NumericColumns) != 2 || res.NumericColumns[0] != "Amount" || res.NumericColumns[1] != "Fee" {
		t.Fatalf("NumericColumns=%v", res.NumericColumns)
	}
}

func TestParseTransactions_EmptyAndTextOnly(t *testing.T) {
	t.Parallel()

	if res := ParseTransactions(loadWorkbook(t, [][]interface{}{{"Date", "Amount"}})); res.Total != 0 {
		t.Fatalf("header-only sheet Total=%v", res.Total)
	}
	res := ParseTransactions(loadWorkbook(t, [][]interface{}{
		{"Date", "Note"},
		{"2024-06-01", "cash"},
	}))
	if res.Total != 0 || len(res.NumericColumns) != 0 {
		t.Fatalf("text-only sheet: %+v", res)
	}
}
