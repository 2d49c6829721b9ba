package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInputMissing 报表文件不存在或无法读取
var ErrInputMissing = errors.New("input report missing or unreadable")

// Cell 单元格：显示文本 + 原始值（日期单元格的原始值为序列号）
type Cell struct {
	Text    string
	Raw     string
	Numeric bool // 以数值类型存储（含日期序列号）
	Date    bool // 数字格式为日期/时间，或以 ISO 日期类型存储
}

// Empty 单元格是否为空
func (c Cell) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && strings.TrimSpace(c.Raw) == ""
}

// Sheet 已读入内存的工作表
type Sheet struct {
	Name string
	rows [][]Cell
}

// NewSheet 由显示文本构建工作表（原始值同显示文本，全部视为文本单元格）
func NewSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name, rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = Cell{Text: v, Raw: v}
		}
		s.rows[i] = cells
	}
	return s
}

// LoadSheet 打开 Excel 文件并读取第一个工作表
func LoadSheet(path string) (*Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputMissing, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputMissing, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrInputMissing, path)
	}
	return ReadSheet(f, sheets[0])
}

// ReadSheet 从已打开的工作簿读取指定工作表
func ReadSheet(f *excelize.File, name string) (*Sheet, error) {
	text, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read raw sheet %s: %w", name, err)
	}

	dateStyles := make(map[int]bool)
	s := &Sheet{Name: name, rows: make([][]Cell, len(text))}
	for i, row := range text {
		var rawRow []string
		if i < len(raw) {
			rawRow = raw[i]
		}
		width := len(row)
		if len(rawRow) > width {
			width = len(rawRow)
		}
		cells := make([]Cell, width)
		for j := 0; j < width; j++ {
			c := Cell{Text: getCell(row, j), Raw: getCell(rawRow, j)}
			if !c.Empty() {
				if err := typeCell(f, name, i, j, &c, dateStyles); err != nil {
					return nil, err
				}
			}
			cells[j] = c
		}
		s.rows[i] = cells
	}
	return s, nil
}

// typeCell 按存储类型与数字格式标记单元格：共享/内联字符串、公式文本、布尔值都不是数值
func typeCell(f *excelize.File, sheet string, row, col int, c *Cell, dateStyles map[int]bool) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return fmt.Errorf("cell type %s!%s: %w", sheet, ref, err)
	}

	switch typ {
	case excelize.CellTypeDate:
		c.Date = true
		return nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if _, ok := ParseNumber(c.Raw); !ok {
			return nil
		}
		c.Numeric = true
	default:
		return nil
	}

	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return fmt.Errorf("cell style %s!%s: %w", sheet, ref, err)
	}
	isDate, seen := dateStyles[styleID]
	if !seen {
		isDate = dateStyle(f, styleID)
		dateStyles[styleID] = isDate
	}
	c.Date = isDate
	return nil
}

// dateStyle 样式的数字格式是否为日期/时间
func dateStyle(f *excelize.File, styleID int) bool {
	if styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if builtInDateNumFmt(style.NumFmt) {
		return true
	}
	return style.CustomNumFmt != nil && isDateNumFmt(*style.CustomNumFmt)
}

// RowCount 行数
func (s *Sheet) RowCount() int {
	return len(s.rows)
}

// Width 最大列数
func (s *Sheet) Width() int {
	w := 0
	for _, row := range s.rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Cell 取单元格，越界返回空单元格
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.rows) || col < 0 || col >= len(s.rows[row]) {
		return Cell{}
	}
	return s.rows[row][col]
}

// Row 取整行（只读）
func (s *Sheet) Row(row int) []Cell {
	if row < 0 || row >= len(s.rows) {
		return nil
	}
	return s.rows[row]
}

// Header 第一行作为表头（按最大列数补齐）
func (s *Sheet) Header() []string {
	if len(s.rows) == 0 {
		return nil
	}
	w := s.Width()
	header := make([]string, w)
	for j := 0; j < w; j++ {
		header[j] = strings.TrimSpace(s.Cell(0, j).Text)
	}
	return header
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
