package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidMonth 月份格式错误
var ErrInvalidMonth = errors.New("invalid month")

var reMonth = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// MonthPeriod 报表月份（年 + 月），首日/末日均为闭区间
type MonthPeriod struct {
	Year  int
	Month time.Month
}

// ParseMonth 解析 "YYYY-MM" 格式的月份
func ParseMonth(s string) (MonthPeriod, error) {
	m := reMonth.FindStringSubmatch(s)
	if len(m) != 3 {
		return MonthPeriod{}, fmt.Errorf("%w: %q, want YYYY-MM", ErrInvalidMonth, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if year <= 0 || month < 1 || month > 12 {
		return MonthPeriod{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthPeriod{Year: year, Month: time.Month(month)}, nil
}

// MonthOf 返回时间所在月份
func MonthOf(t time.Time) MonthPeriod {
	return MonthPeriod{Year: t.Year(), Month: t.Month()}
}

// FirstDay 当月第一天 00:00 UTC
func (p MonthPeriod) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay 当月最后一天 00:00 UTC
func (p MonthPeriod) LastDay() time.Time {
	return p.FirstDay().AddDate(0, 1, -1)
}

// Contains 判断日期是否落在当月（按日历日比较，忽略时分秒）
func (p MonthPeriod) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.FirstDay()) && !d.After(p.LastDay())
}

// Previous 上一个月
func (p MonthPeriod) Previous() MonthPeriod {
	return MonthOf(p.FirstDay().AddDate(0, -1, 0))
}

func (p MonthPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
