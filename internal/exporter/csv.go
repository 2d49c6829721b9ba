package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"rsdashboard/internal/model"
)

// DebugFiles 调试用 CSV 文件路径
type DebugFiles struct {
	Daily     string
	RoomTypes string
	Extras    string
}

// WriteDebugCSVs 将每日、房型、附加收入三部分写成 CSV，仅供人工核对
func WriteDebugCSVs(dir string, doc *model.Dashboard) (DebugFiles, error) {
	files := DebugFiles{
		Daily:     filepath.Join(dir, doc.Month+"-daily.csv"),
		RoomTypes: filepath.Join(dir, doc.Month+"-roomtypes.csv"),
		Extras:    filepath.Join(dir, doc.Month+"-extras.csv"),
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return files, err
	}

	daily := [][]string{{"date", "sold_rooms", "oos_rooms"}}
	for _, d := range doc.Daily {
		daily = append(daily, []string{d.Date, strconv.Itoa(d.SoldRooms), strconv.Itoa(d.OOSRooms)})
	}
	if err := writeCSV(files.Daily, daily); err != nil {
		return files, err
	}

	roomTypes := [][]string{{"type", "rooms_sold", "net_revenue", "arr"}}
	for _, r := range doc.RoomTypes {
		roomTypes = append(roomTypes, []string{r.Type, strconv.Itoa(r.RoomsSold), formatMoney(r.NetRevenue), formatMoney(r.ARR)})
	}
	if err := writeCSV(files.RoomTypes, roomTypes); err != nil {
		return files, err
	}

	keys := make([]string, 0, len(doc.ExtraIncome))
	for k := range doc.ExtraIncome {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	extras := [][]string{{"key", "value"}}
	for _, k := range keys {
		extras = append(extras, []string{k, formatMoney(doc.ExtraIncome[k])})
	}
	if err := writeCSV(files.Extras, extras); err != nil {
		return files, err
	}
	return files, nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
