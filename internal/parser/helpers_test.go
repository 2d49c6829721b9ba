package parser

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook 写入单工作表的 xlsx 测试文件并返回路径
func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	return writeFormattedWorkbook(t, name, rows, nil)
}

// writeFormattedWorkbook 同 writeWorkbook，并按列（"A"、"B"...）对数据行设置自定义数字格式
func writeFormattedWorkbook(t *testing.T, name string, rows [][]interface{}, formats map[string]string) string {
	t.Helper()

	wb := excelize.NewFile()
	t.Cleanup(func() { _ = wb.Close() })
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
			t.Fatalf("NewStyle %q failed: %v", code, err)
		}
		if err := wb.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, len(rows)), style); err != nil {
			t.Fatalf("SetCellStyle failed: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func loadWorkbook(t *testing.T, rows [][]interface{}) *Sheet {
	t.Helper()

	s, err := LoadSheet(writeWorkbook(t, "fixture.xlsx", rows))
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	return s
}

func loadFormattedWorkbook(t *testing.T, rows [][]interface{}, formats map[string]string) *Sheet {
	t.Helper()

	s, err := LoadSheet(writeFormattedWorkbook(t, "fixture.xlsx", rows, formats))
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	return s
}
