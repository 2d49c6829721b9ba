package parser

import (
	"errors"
	"strings"
)

// ErrProductColumnMissing 按产品收入表没有任何列，无法进行分类匹配
var ErrProductColumnMissing = errors.New("income-by-products: product column missing")

// ParseProducts 按产品收入表：定位产品列、售出间夜列、收入列。
// 产品列缺失（表头为空）直接报错；其他列缺失时对应数值按 0 处理。
func ParseProducts(s *Sheet) (ProductsResult, error) {
	header := s.Header()
	mapper := NewFieldMapper(header)

	res := ProductsResult{
		Product:   mapper.Resolve(ProductNameField),
		RoomsSold: mapper.Resolve(ProductRoomsSoldField),
		Revenue:   mapper.Resolve(ProductRevenueField),
		Rows:      []ProductRow{},
	}
	if !res.Product.Found() {
		return res, ErrProductColumnMissing
	}

	for row := 1; row < s.RowCount(); row++ {
		if rowAllEmpty(s.Row(row)) {
			continue
		}
		pr := ProductRow{Product: strings.TrimSpace(s.Cell(row, res.Product.Index).Text)}
		if res.RoomsSold.Found() {
			pr.RoomsSold, _ = cellNumber(s.Cell(row, res.RoomsSold.Index))
		}
		if res.Revenue.Found() {
			pr.Revenue, _ = cellNumber(s.Cell(row, res.Revenue.Index))
		}
		res.Rows = append(res.Rows, pr)
	}
	return res, nil
}
