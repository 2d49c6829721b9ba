package parser

// ParseDeposits 押金表：首行为表头，定位银行日期列与金额列；日期无法解析的行 HasDate=false，
// 金额非数值按 0 处理。
func ParseDeposits(s *Sheet) DepositsResult {
	mapper := NewFieldMapper(s.Header())
	res := DepositsResult{
		BankDate: mapper.Resolve(DepositBankDateField),
		Amount:   mapper.Resolve(DepositAmountField),
		Rows:     []DepositRow{},
	}

	for row := 1; row < s.RowCount(); row++ {
		if rowAllEmpty(s.Row(row)) {
			continue
		}
		var dr DepositRow
		if res.BankDate.Found() {
			dr.BankDate, dr.HasDate = cellDate(s.Cell(row, res.BankDate.Index))
		}
		if res.Amount.Found() {
			dr.Amount, _ = cellNumber(s.Cell(row, res.Amount.Index))
		}
		res.Rows = append(res.Rows, dr)
	}
	return res
}

func rowAllEmpty(row []Cell) bool {
	for _, c := range row {
		if !c.Empty() {
			return false
		}
	}
	return true
}
