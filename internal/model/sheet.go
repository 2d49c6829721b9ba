package model

import "fmt"

// ReportKind 门户导出的报表类型
type ReportKind string

const (
	ReportHistoryForecast  ReportKind = "history-forecast"
	ReportTransactions     ReportKind = "transactions-user-selected"
	ReportDepositsApplied  ReportKind = "deposits-applied-received"
	ReportIncomeByProducts ReportKind = "income-by-products-monthly"
)

// RequiredReports 每月必须存在的四张报表（按处理顺序）
var RequiredReports = []ReportKind{
	ReportHistoryForecast,
	ReportTransactions,
	ReportDepositsApplied,
	ReportIncomeByProducts,
}

// FileName 报表文件名: {month}-{kind}.xlsx
func (k ReportKind) FileName(month MonthPeriod) string {
	return fmt.Sprintf("%s-%s.xlsx", month, k)
}
