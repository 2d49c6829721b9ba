package report

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"rsdashboard/internal/logging"
	"rsdashboard/internal/model"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 7, 1, 8, 15, 30, 123456000, time.FixedZone("SAST", 2*3600))
}

func writeSheet(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	writeFormattedSheet(t, path, rows, nil)
}

// writeFormattedSheet 按列（"A"、"B"...）对数据行设置自定义数字格式
func writeFormattedSheet(t *testing.T, path string, rows [][]interface{}, formats map[string]string) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, row := range rows {
		r := row
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	for col, code := range formats {
		numFmt := code
		style, err := wb.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			t.Fatalf("NewStyle failed: %v", err)
		}
		if err := wb.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, len(rows)), style); err != nil {
			t.Fatalf("SetCellStyle failed: %v", err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs %s failed: %v", path, err)
	}
}

// juneFixture 写入 2024-06 的四张报表，返回原始目录
func juneFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	month, _ := model.ParseMonth("2024-06")

	history := [][]interface{}{
		{"Occupancy Report"},
		{"Date", "Sold Rooms", "Out Of Service"},
		{"History"},
	}
	for d := 1; d <= 30; d++ {
		history = append(history, []interface{}{fmt.Sprintf("2024-06-%02d", d), 10 + d%3, 0})
	}
	history = append(history, []interface{}{"Forecast"}, []interface{}{"2024-07-01", 5, 0})
	writeSheet(t, InputPath(dir, month, model.ReportHistoryForecast), history)

	writeSheet(t, InputPath(dir, month, model.ReportTransactions), [][]interface{}{
		{"Date", "Guest", "Amount"},
		{"2024-06-02", "Smith", 6500.0},
		{"2024-06-09", "Jones", 5000.0},
	})

	writeSheet(t, InputPath(dir, month, model.ReportDepositsApplied), [][]interface{}{
		{"Bank date", "Reference", "Amount"},
		{"2024-05-15", "DEP-1", 230.0},
		{"2024-06-10", "DEP-2", 460.0},
	})

	writeSheet(t, InputPath(dir, month, model.ReportIncomeByProducts), [][]interface{}{
		{"Product", "Rooms Sold", "Charges"},
		{"Standard Queen", 20, 2300.0},
		{"Deluxe Suite", 5, 1150.0},
		{"Breakfast", nil, 575.0},
		{"Parking", nil, 0.0},
	})
	return dir
}

func juneOptions(t *testing.T, rawDir string) Options {
	t.Helper()

	month, _ := model.ParseMonth("2024-06")
	return Options{
		Month:   month,
		RawDir:  rawDir,
		VATRate: 0.15,
		RoomTypes: model.NewCategoryMap(map[string][]string{
			"Standard": {"Standard"},
			"Suite":    {"Suite"},
			"Family":   {"Family"},
		}),
		ExtraIncome: model.NewCategoryMap(map[string][]string{
			"Breakfast": {"breakfast"},
			"Laundry":   {"Laundry"},
		}),
		Targets: map[string]float64{
			"daily_revenue_target": 25000,
			"occupancyPct":         75,
			"arrBreakeven":         850,
		},
		Now: fixedNow,
	}
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(logging.Discard())
}

func pathIn(dir, name string) string {
	return filepath.Join(dir, name)
}
