package parser

import (
	"time"

	"rsdashboard/internal/model"
)

// ParseHistory 解析历史/预测表（无表头）：定位 "History" 标记行，读取其后固定窗口的前三列
// (日期, 售出间数, 停用间数)，只保留日期落在当月的行。未找到标记时返回空结果。
func ParseHistory(s *Sheet, month model.MonthPeriod) HistoryResult {
	res := HistoryResult{MarkerRow: FindMarkerRow(s, HistoryMarker), Days: []DayRow{}}
	if res.MarkerRow < 0 {
		return res
	}

	start := res.MarkerRow + 1
	end := start + HistoryWindowRows
	seen := make(map[time.Time]struct{})

	for i := start; i < end && i < s.RowCount(); i++ {
		if rowEmpty(s, i, 3) {
			continue
		}
		dateCell := s.Cell(i, 0)
		if !isISODateCell(dateCell) {
			continue
		}
		date, ok := cellDate(dateCell)
		if !ok || !month.Contains(date) {
			continue
		}
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		if _, dup := seen[day]; dup {
			res.Duplicates++
			continue
		}
		seen[day] = struct{}{}

		res.Days = append(res.Days, DayRow{
			Date:         day,
			SoldRooms:    countCell(s.Cell(i, 1)),
			OutOfService: countCell(s.Cell(i, 2)),
		})
	}
	return res
}

func countCell(c Cell) int {
	f, ok := cellNumber(c)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}
