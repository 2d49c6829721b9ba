package report

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ExclVAT 含税金额换算为不含税：round(incl / (1 + rate), 2)。
// .xx5 恰好居中时远离零进位（不是银行家舍入）。
func ExclVAT(incl, rate float64) float64 {
	return toFloat(exclVAT(decimal.NewFromFloat(incl), rate))
}

func exclVAT(incl decimal.Decimal, rate float64) decimal.Decimal {
	divisor := one.Add(decimal.NewFromFloat(rate))
	if divisor.IsZero() {
		return decimal.Zero
	}
	return incl.Div(divisor).Round(2)
}

// Round2 保留两位小数（四舍五入，远离零）
func Round2(v float64) float64 {
	return toFloat(decimal.NewFromFloat(v).Round(2))
}

// averageRate 平均房价 = 不含税收入 / 售出间夜；间夜为 0 时返回 0
func averageRate(revenue decimal.Decimal, roomsSold int) decimal.Decimal {
	if roomsSold == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(roomsSold))).Round(2)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
