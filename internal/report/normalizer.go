package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rsdashboard/internal/model"
	"rsdashboard/internal/parser"
)

// GeneratedAtLayout generated_at 时间格式（UTC，末尾带 Z）
const GeneratedAtLayout = "2006-01-02T15:04:05.000000Z"

// Options 单次运行的全部输入；不读取环境变量或全局状态
type Options struct {
	Month       model.MonthPeriod
	RawDir      string
	RoomTypes   model.CategoryMap
	ExtraIncome model.CategoryMap
	VATRate     float64
	Targets     map[string]float64
	Now         func() time.Time // 生成时间，nil 时使用 time.Now
}

// Inputs 四张原始报表
type Inputs struct {
	History      *parser.Sheet
	Transactions *parser.Sheet
	Deposits     *parser.Sheet
	Products     *parser.Sheet
}

// Normalizer 报表归一化：原始报表 -> 看板文档
type Normalizer struct {
	log logrus.FieldLogger
}

// NewNormalizer 创建归一化器
func NewNormalizer(log logrus.FieldLogger) *Normalizer {
	return &Normalizer{log: log}
}

// InputPath 报表文件路径: {rawDir}/{month}-{kind}.xlsx
func InputPath(rawDir string, month model.MonthPeriod, kind model.ReportKind) string {
	return filepath.Join(rawDir, kind.FileName(month))
}

// LoadInputs 读取四张报表；任一缺失或无法读取即返回 parser.ErrInputMissing
func LoadInputs(rawDir string, month model.MonthPeriod) (*Inputs, error) {
	sheets := make(map[model.ReportKind]*parser.Sheet, len(model.RequiredReports))
	for _, kind := range model.RequiredReports {
		s, err := parser.LoadSheet(InputPath(rawDir, month, kind))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", kind, err)
		}
		sheets[kind] = s
	}
	return &Inputs{
		History:      sheets[model.ReportHistoryForecast],
		Transactions: sheets[model.ReportTransactions],
		Deposits:     sheets[model.ReportDepositsApplied],
		Products:     sheets[model.ReportIncomeByProducts],
	}, nil
}

// Build 读取报表并生成看板文档
func (n *Normalizer) Build(opts Options) (*model.Dashboard, error) {
	in, err := LoadInputs(opts.RawDir, opts.Month)
	if err != nil {
		return nil, err
	}
	return n.Normalize(in, opts)
}

// Normalize 由已读入的报表生成看板文档
func (n *Normalizer) Normalize(in *Inputs, opts Options) (*model.Dashboard, error) {
	log := n.log.WithField("month", opts.Month.String())

	products, err := parser.ParseProducts(in.Products)
	if err != nil {
		return nil, err
	}
	n.logResolution(log, model.ReportIncomeByProducts, products.Product, products.RoomsSold, products.Revenue)

	daily := n.daily(log, in.History, opts.Month)
	bankIncome := n.bankIncome(log, in.Transactions, opts.VATRate)
	deposits := n.prevMonthDeposits(log, in.Deposits, opts.Month, opts.VATRate)

	if dup := overlappingProducts(products.Rows, opts.RoomTypes, opts.ExtraIncome); len(dup) > 0 {
		log.WithField("products", dup).Warn("产品同时命中多个分类，将被重复计入")
	}
	roomTypes, roomTotal := summarizeRoomTypes(products.Rows, opts.RoomTypes, opts.VATRate)
	extras, extraTotal := summarizeExtras(products.Rows, opts.ExtraIncome, opts.VATRate)
	grandTotal := roomTotal.Add(extraTotal).Round(2)

	targets := make(map[string]float64, len(opts.Targets))
	for k, v := range opts.Targets {
		targets[k] = v
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	doc := &model.Dashboard{
		Month: opts.Month.String(),
		Overview: model.Overview{
			Targets:                     targets,
			BankIncomeToDateExVAT:       bankIncome,
			LessDepositsPrevMonthsExVAT: deposits,
			NetRevenueRoomsExVAT:        toFloat(roomTotal),
			NetExtraIncomeExVAT:         toFloat(extraTotal),
			TotalRevenueExVAT:           toFloat(grandTotal),
		},
		Daily:       daily,
		RoomTypes:   roomTypes,
		ExtraIncome: extras,
		GeneratedAt: now().UTC().Format(GeneratedAtLayout),
	}

	log.WithFields(logrus.Fields{
		"days":          len(doc.Daily),
		"room_types":    len(doc.RoomTypes),
		"total_ex_vat":  doc.Overview.TotalRevenueExVAT,
		"bank_income":   doc.Overview.BankIncomeToDateExVAT,
		"prev_deposits": doc.Overview.LessDepositsPrevMonthsExVAT,
	}).Info("看板数据生成完成")
	return doc, nil
}

func (n *Normalizer) daily(log logrus.FieldLogger, s *parser.Sheet, month model.MonthPeriod) []model.DailyOccupancy {
	res := parser.ParseHistory(s, month)
	if res.MarkerRow < 0 {
		log.WithField("sheet", model.ReportHistoryForecast).Warn("未找到 History 标记行，每日数据为空")
	}
	if res.Duplicates > 0 {
		log.WithField("duplicates", res.Duplicates).Warn("历史表中存在重复日期，保留首次出现")
	}

	out := make([]model.DailyOccupancy, 0, len(res.Days))
	for _, d := range res.Days {
		out = append(out, model.DailyOccupancy{
			Date:      d.Date.Format("2006-01-02"),
			SoldRooms: d.SoldRooms,
			OOSRooms:  d.OutOfService,
		})
	}
	return out
}

func (n *Normalizer) bankIncome(log logrus.FieldLogger, s *parser.Sheet, vatRate float64) float64 {
	res := parser.ParseTransactions(s)
	if len(res.NumericColumns) == 0 {
		log.WithField("sheet", model.ReportTransactions).Warn("交易表没有数值列，银行收入按 0 处理")
	}
	return ExclVAT(res.Total, vatRate)
}

// prevMonthDeposits 银行日期早于当月首日的押金合计（不含税）
func (n *Normalizer) prevMonthDeposits(log logrus.FieldLogger, s *parser.Sheet, month model.MonthPeriod, vatRate float64) float64 {
	res := parser.ParseDeposits(s)
	n.logResolution(log, model.ReportDepositsApplied, res.BankDate, res.Amount)

	first := month.FirstDay()
	sum := decimal.Zero
	for _, r := range res.Rows {
		if r.HasDate && r.BankDate.Before(first) {
			sum = sum.Add(decimal.NewFromFloat(r.Amount))
		}
	}
	return toFloat(exclVAT(sum, vatRate))
}

func (n *Normalizer) logResolution(log logrus.FieldLogger, kind model.ReportKind, cols ...parser.ColumnResolution) {
	for _, c := range cols {
		if c.Source == parser.SourceAlias {
			continue
		}
		log.WithFields(logrus.Fields{
			"sheet":  kind,
			"field":  c.Field,
			"source": c.Source,
			"column": c.Header,
		}).Warn("列未按名称命中")
	}
}
