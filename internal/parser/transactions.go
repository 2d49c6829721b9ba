package parser

// ParseTransactions 交易表：首行为表头，选出所有数值列（每个非空数据单元格都以数值类型存储，
// 日期与文本形式的数字不算）并累加全部单元格。不依赖列名，表头变动不影响结果。
func ParseTransactions(s *Sheet) TransactionsResult {
	res := TransactionsResult{NumericColumns: []string{}}
	if s.RowCount() <= 1 {
		return res
	}

	header := s.Header()
	for col := range header {
		sum, hasValue, numeric := 0.0, false, true
		for row := 1; row < s.RowCount(); row++ {
			c := s.Cell(row, col)
			if c.Empty() {
				continue
			}
			f, ok := storedNumber(c)
			if !ok {
				numeric = false
				break
			}
			sum += f
			hasValue = true
		}
		if !numeric || !hasValue {
			continue
		}
		res.NumericColumns = append(res.NumericColumns, header[col])
		res.Total += sum
	}
	return res
}
