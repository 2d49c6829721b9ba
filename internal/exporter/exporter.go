package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rsdashboard/internal/model"
)

// ErrNotFound 指定月份尚未生成看板
var ErrNotFound = errors.New("dashboard not found")

// JSONPath 看板 JSON 路径: {dir}/{month}.json
func JSONPath(dir string, month model.MonthPeriod) string {
	return filepath.Join(dir, month.String()+".json")
}

// WriteJSON 写入看板 JSON（两空格缩进，先写临时文件再重命名，重复运行直接覆盖）
func WriteJSON(dir string, doc *model.Dashboard) (string, error) {
	month, err := model.ParseMonth(doc.Month)
	if err != nil {
		return "", err
	}
	path := JSONPath(dir, month)
	if err := writeJSONAtomic(path, doc); err != nil {
		return "", fmt.Errorf("write dashboard json: %w", err)
	}
	return path, nil
}

// ReadJSON 读取已生成的看板
func ReadJSON(dir string, month model.MonthPeriod) (*model.Dashboard, error) {
	data, err := os.ReadFile(JSONPath(dir, month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, month)
		}
		return nil, err
	}
	var doc model.Dashboard
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", month, err)
	}
	return &doc, nil
}

// ListMonths 列出目录中已生成看板的月份（倒序）
func ListMonths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if _, err := model.ParseMonth(name); err != nil {
			continue
		}
		out = append(out, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
