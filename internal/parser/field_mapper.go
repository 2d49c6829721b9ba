package parser

// Fallback 未命中候选列名时的兜底策略
type Fallback int

const (
	FallbackNone        Fallback = iota // 缺失，按 0 处理
	FallbackFirstColumn                 // 取第一列
	FallbackLastColumn                  // 取最后一列
)

// FieldSpec 逻辑字段的候选列名（按优先级）与兜底策略
type FieldSpec struct {
	Field    string
	Aliases  []string
	Fallback Fallback
}

// 各报表的逻辑字段定义
var (
	DepositBankDateField = FieldSpec{
		Field:    "bank_date",
		Aliases:  []string{"Bank date", "Bank Date"},
		Fallback: FallbackFirstColumn,
	}
	DepositAmountField = FieldSpec{
		Field:    "amount",
		Aliases:  []string{"Amount"},
		Fallback: FallbackLastColumn,
	}
	ProductNameField = FieldSpec{
		Field:    "product",
		Aliases:  []string{"Product", "Type"},
		Fallback: FallbackFirstColumn,
	}
	ProductRoomsSoldField = FieldSpec{
		Field: "rooms_sold",
		Aliases: []string{
			"No. of Accom Rooms Sold",
			"Rooms Sold",
			"No. of Rooms Sold",
			"No. of rooms sold",
		},
		Fallback: FallbackNone,
	}
	ProductRevenueField = FieldSpec{
		Field: "revenue",
		Aliases: []string{
			"Charges (Sales) - (Selected by effective date)",
			"Charges (Sales)",
			"Charges",
		},
		Fallback: FallbackNone,
	}
)

// FieldMapper 字段映射器：在表头中按候选列名定位逻辑字段
type FieldMapper struct {
	header     []string
	normalized []string
}

// NewFieldMapper 创建字段映射器
func NewFieldMapper(header []string) *FieldMapper {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeColumnName(h)
	}
	return &FieldMapper{header: header, normalized: normalized}
}

// Resolve 定位单个字段：候选列名依次尝试，先命中者胜出；都未命中时按兜底策略
func (m *FieldMapper) Resolve(spec FieldSpec) ColumnResolution {
	res := ColumnResolution{Field: spec.Field, Index: -1, Source: SourceMissing}

	for _, alias := range spec.Aliases {
		want := NormalizeColumnName(alias)
		for idx, col := range m.normalized {
			if col != "" && col == want {
				res.Index = idx
				res.Header = m.header[idx]
				res.Source = SourceAlias
				return res
			}
		}
	}

	if len(m.header) == 0 {
		return res
	}

	switch spec.Fallback {
	case FallbackFirstColumn:
		res.Index = 0
	case FallbackLastColumn:
		res.Index = len(m.header) - 1
	default:
		return res
	}
	res.Header = m.header[res.Index]
	res.Source = SourceFallback
	return res
}
