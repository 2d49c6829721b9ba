package parser

// HistoryMarker 历史/预测表中数据块的标记文本
const HistoryMarker = "History"

// HistoryWindowRows 标记行之后读取的行数（一个月加余量）
const HistoryWindowRows = 62

// FindMarkerRow 逐行扫描，返回第一行任一单元格包含 marker（不区分大小写）的行号，未找到返回 -1
func FindMarkerRow(s *Sheet, marker string) int {
	for i := 0; i < s.RowCount(); i++ {
		for _, c := range s.Row(i) {
			if ContainsFold(c.Text, marker) {
				return i
			}
		}
	}
	return -1
}

// rowEmpty 行的前 n 列是否全空
func rowEmpty(s *Sheet, row, n int) bool {
	for j := 0; j < n; j++ {
		if !s.Cell(row, j).Empty() {
			return false
		}
	}
	return true
}
