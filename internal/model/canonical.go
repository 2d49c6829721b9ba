package model

// Overview 看板总览（金额均为不含税）
type Overview struct {
	Targets                     map[string]float64 `json:"targets"`
	BankIncomeToDateExVAT       float64            `json:"bank_income_to_date_ex_vat"`
	LessDepositsPrevMonthsExVAT float64            `json:"less_deposits_prev_months_ex_vat"`
	NetRevenueRoomsExVAT        float64            `json:"net_revenue_rooms_ex_vat"`
	NetExtraIncomeExVAT         float64            `json:"net_extra_income_ex_vat"`
	TotalRevenueExVAT           float64            `json:"total_revenue_ex_vat"`
}

// DailyOccupancy 单日出租情况
type DailyOccupancy struct {
	Date      string `json:"date"` // YYYY-MM-DD
	SoldRooms int    `json:"sold_rooms"`
	OOSRooms  int    `json:"oos_rooms"`
}

// RoomTypeSummary 房型汇总
type RoomTypeSummary struct {
	Type       string  `json:"type"`
	RoomsSold  int     `json:"rooms_sold"`
	NetRevenue float64 `json:"net_revenue"`
	ARR        float64 `json:"arr"` // 平均房价 = 不含税收入 / 售出间夜
}

// Dashboard 单月看板文档，每次运行重新生成
type Dashboard struct {
	Month       string             `json:"month"`
	Overview    Overview           `json:"overview"`
	Daily       []DailyOccupancy   `json:"daily"`
	RoomTypes   []RoomTypeSummary  `json:"room_types"`
	ExtraIncome map[string]float64 `json:"extra_income"`
	GeneratedAt string             `json:"generated_at"`
}
