package parser

import "time"

// ResolutionSource 列定位命中的路径
type ResolutionSource string

const (
	SourceAlias    ResolutionSource = "alias"    // 表头命中候选列名
	SourceFallback ResolutionSource = "fallback" // 未命中，退回按位置取列
	SourceMissing  ResolutionSource = "missing"  // 未命中且无兜底，按 0 处理
)

// ColumnResolution 单个逻辑字段的列定位结果
type ColumnResolution struct {
	Field  string           `json:"field"`
	Index  int              `json:"index"` // -1 表示缺失
	Header string           `json:"header"`
	Source ResolutionSource `json:"source"`
}

// Found 是否定位到列
func (r ColumnResolution) Found() bool {
	return r.Index >= 0
}

// HistoryResult 历史/预测表解析结果
type HistoryResult struct {
	MarkerRow  int // 命中 "History" 的行号（0 起），-1 表示未找到
	Days       []DayRow
	Duplicates int // 窗口内重复日期（保留首次出现）
}

// DayRow 单日出租数据
type DayRow struct {
	Date         time.Time
	SoldRooms    int
	OutOfService int
}

// TransactionsResult 交易表解析结果
type TransactionsResult struct {
	NumericColumns []string
	Total          float64 // 含税
}

// DepositRow 押金行
type DepositRow struct {
	BankDate time.Time
	HasDate  bool
	Amount   float64
}

// DepositsResult 押金表解析结果
type DepositsResult struct {
	BankDate ColumnResolution
	Amount   ColumnResolution
	Rows     []DepositRow
}

// ProductRow 按产品收入表中的一行
type ProductRow struct {
	Product   string
	RoomsSold float64
	Revenue   float64 // 含税
}

// ProductsResult 按产品收入表解析结果
type ProductsResult struct {
	Product   ColumnResolution
	RoomsSold ColumnResolution
	Revenue   ColumnResolution
	Rows      []ProductRow
}
