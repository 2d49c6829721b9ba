package report

import (
	"github.com/sirupsen/logrus"

	"rsdashboard/internal/exporter"
	"rsdashboard/internal/model"
)

// Output 输出目录
type Output struct {
	WorkingDir string // 调试 CSV；为空时不写
	JSONDir    string
}

// Result 一次完整运行的产物
type Result struct {
	Dashboard *model.Dashboard
	JSONPath  string
	Debug     exporter.DebugFiles
}

// Run 生成看板并写出调试 CSV 与 {month}.json；报表缺失时不写任何文件
func (n *Normalizer) Run(opts Options, out Output) (*Result, error) {
	doc, err := n.Build(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Dashboard: doc}
	if out.WorkingDir != "" {
		if res.Debug, err = exporter.WriteDebugCSVs(out.WorkingDir, doc); err != nil {
			return nil, err
		}
	}
	if res.JSONPath, err = exporter.WriteJSON(out.JSONDir, doc); err != nil {
		return nil, err
	}

	n.log.WithFields(logrus.Fields{
		"month": doc.Month,
		"path":  res.JSONPath,
	}).Info("看板 JSON 已写出")
	return res, nil
}
