package report

import (
	"github.com/shopspring/decimal"

	"rsdashboard/internal/model"
	"rsdashboard/internal/parser"
)

// summarizeRoomTypes 按房型分类累加售出间夜与收入（产品名命中任一别名即计入）
func summarizeRoomTypes(rows []parser.ProductRow, cats model.CategoryMap, vatRate float64) ([]model.RoomTypeSummary, decimal.Decimal) {
	out := make([]model.RoomTypeSummary, 0, len(cats))
	total := decimal.Zero

	for _, cat := range cats {
		var sold float64
		revIncl := decimal.Zero
		for _, r := range rows {
			if !cat.Matches(r.Product) {
				continue
			}
			sold += r.RoomsSold
			revIncl = revIncl.Add(decimal.NewFromFloat(r.Revenue))
		}

		roomsSold := int(sold)
		revExcl := exclVAT(revIncl, vatRate)
		total = total.Add(revExcl)

		out = append(out, model.RoomTypeSummary{
			Type:       cat.Key,
			RoomsSold:  roomsSold,
			NetRevenue: toFloat(revExcl),
			ARR:        toFloat(averageRate(revExcl, roomsSold)),
		})
	}
	return out, total.Round(2)
}

// summarizeExtras 按附加收入分类累加收入
func summarizeExtras(rows []parser.ProductRow, cats model.CategoryMap, vatRate float64) (map[string]float64, decimal.Decimal) {
	out := make(map[string]float64, len(cats))
	total := decimal.Zero

	for _, cat := range cats {
		revIncl := decimal.Zero
		for _, r := range rows {
			if cat.Matches(r.Product) {
				revIncl = revIncl.Add(decimal.NewFromFloat(r.Revenue))
			}
		}
		revExcl := exclVAT(revIncl, vatRate)
		total = total.Add(revExcl)
		out[cat.Key] = toFloat(revExcl)
	}
	return out, total.Round(2)
}

// overlappingProducts 同时命中多个分类（会被重复计入）的产品名
func overlappingProducts(rows []parser.ProductRow, groups ...model.CategoryMap) []string {
	var out []string
	for _, r := range rows {
		hits := 0
		for _, cats := range groups {
			for _, cat := range cats {
				if cat.Matches(r.Product) {
					hits++
				}
			}
		}
		if hits > 1 {
			out = append(out, r.Product)
		}
	}
	return out
}
