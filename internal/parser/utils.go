package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	reSpaces  = regexp.MustCompile(`\s+`)
	reISODate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	// 数字格式中的字面量：引号文本、转义字符、占位/填充字符、[颜色]/[$货币-区域]/[h] 等方括号段
	reNumFmtLiteral = regexp.MustCompile(`"[^"]*"|\\.|_.|\*.|\[[^\]]*\]`)
	reNumFmtElapsed = regexp.MustCompile(`(?i)\[(h+|m+|s+)\]`)
)

// dateLayouts 门户导出中常见的日期显示格式
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"1/2/06",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"2-Jan-06",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// NormalizeColumnName 规范化列名：去除所有空白并转小写
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = reSpaces.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// ContainsFold 不区分大小写的子串判断
func ContainsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(sub))
}

// ContainsAny 检查字符串是否包含任意一个关键词（不区分大小写）
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if ContainsFold(text, kw) {
			return true
		}
	}
	return false
}

// ParseNumber 解析数值单元格，去除千分位；空串或非数值返回 false
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDateText 按常见格式解析日期文本
func ParseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// builtInDateNumFmt 内置日期/时间格式编号（含东亚区域格式）
func builtInDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateNumFmt 自定义数字格式去掉字面量后是否含 y/m/d/h/s 记号
func isDateNumFmt(code string) bool {
	if reNumFmtElapsed.MatchString(code) {
		return true
	}
	code = reNumFmtLiteral.ReplaceAllString(code, "")
	return strings.ContainsAny(strings.ToLower(code), "ymdhs")
}

// isDateCell 日期单元格（由数字格式或存储类型判定，不看显示文本）
func isDateCell(c Cell) bool {
	return c.Date
}

// cellDate 解析日期单元格：日期序列号优先换算，其次解析显示文本
func cellDate(c Cell) (time.Time, bool) {
	if isDateCell(c) && c.Numeric {
		serial, _ := ParseNumber(c.Raw)
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	for _, v := range []string{c.Text, c.Raw} {
		if m := reISODate.FindString(v); m != "" {
			if t, err := time.Parse("2006-01-02", m); err == nil {
				return t, true
			}
		}
	}
	return ParseDateText(c.Text)
}

// storedNumber 以数值类型存储的单元格；文本形式的数字与日期都不算
func storedNumber(c Cell) (float64, bool) {
	if !c.Numeric || isDateCell(c) {
		return 0, false
	}
	return ParseNumber(c.Raw)
}

// cellNumber 宽松解析数值（文本形式的数字也接受）；日期单元格不算数值
func cellNumber(c Cell) (float64, bool) {
	if isDateCell(c) {
		return 0, false
	}
	if f, ok := ParseNumber(c.Raw); ok {
		return f, true
	}
	return ParseNumber(c.Text)
}

// isISODateCell 历史表日期列：显示为 YYYY-MM-DD 或为日期格式单元格
func isISODateCell(c Cell) bool {
	return reISODate.MatchString(c.Text) || isDateCell(c)
}
