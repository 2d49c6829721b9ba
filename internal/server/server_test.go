package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"rsdashboard/internal/config"
	"rsdashboard/internal/logging"
	"rsdashboard/internal/model"
	"rsdashboard/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *config.AppConfig) {
	t.Helper()

	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Paths.RawDir = filepath.Join(root, "raw")
	cfg.Paths.WorkingDir = filepath.Join(root, "working")
	cfg.Paths.JSONDir = filepath.Join(root, "json")
	cfg.RoomTypeMap = map[string][]string{"Standard": {"Standard"}}
	cfg.ExtraIncomeMap = map[string][]string{"Breakfast": {"Breakfast"}}
	if err := config.EnsureDirs(cfg); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	return NewServer(cfg, logging.Discard()), cfg
}

func writeXLSX(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, row := range rows {
		r := row
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
}

func writeJuneInputs(t *testing.T, rawDir string) {
	t.Helper()

	month, _ := model.ParseMonth("2024-06")
	in := func(k model.ReportKind) string { return filepath.Join(rawDir, k.FileName(month)) }

	writeXLSX(t, in(model.ReportHistoryForecast), [][]interface{}{
		{"Date", "Sold", "OOS"},
		{"History"},
		{"2024-06-01", 12, 1},
		{"2024-06-02", 14, 0},
	})
	writeXLSX(t, in(model.ReportTransactions), [][]interface{}{
		{"Guest", "Amount"},
		{"Smith", 11500.0},
	})
	writeXLSX(t, in(model.ReportDepositsApplied), [][]interface{}{
		{"Bank date", "Amount"},
		{"2024-05-20", 230.0},
	})
	writeXLSX(t, in(model.ReportIncomeByProducts), [][]interface{}{
		{"Product", "Rooms Sold", "Charges"},
		{"Standard Twin", 20, 2300.0},
		{"Breakfast", nil, 575.0},
	})
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.VATRate != 0.15 || resp.MonthCount != 0 {
		t.Fatalf("unexpected status: %+v", resp)
	}
	if len(resp.RoomTypes) != 1 || resp.RoomTypes[0] != "Standard" {
		t.Fatalf("room types=%v", resp.RoomTypes)
	}
}

func TestGetDashboard_BadMonth(t *testing.T) {
	s, _ := newTestServer(t)

	if w := do(t, s, http.MethodGet, "/api/dashboard/2024-13"); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/api/dashboard/june/build"); w.Code != http.StatusBadRequest {
		t.Fatalf("build status=%d", w.Code)
	}
}

func TestGetDashboard_NotGenerated(t *testing.T) {
	s, _ := newTestServer(t)

	if w := do(t, s, http.MethodGet, "/api/dashboard/2024-06"); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBuildDashboard_MissingInput(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/dashboard/2024-06/build")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["requestId"] == "" || resp["error"] == "" {
		t.Fatalf("unexpected body: %v", resp)
	}

	w = do(t, s, http.MethodGet, "/api/builds")
	var builds struct {
		Items []store.BuildRecord `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &builds); err != nil {
		t.Fatalf("decode builds: %v", err)
	}
	if len(builds.Items) != 1 || builds.Items[0].OK || builds.Items[0].RequestID != resp["requestId"] {
		t.Fatalf("builds=%+v", builds.Items)
	}
}

func TestBuildThenRead(t *testing.T) {
	s, cfg := newTestServer(t)
	writeJuneInputs(t, cfg.Paths.RawDir)

	w := do(t, s, http.MethodPost, "/api/dashboard/2024-06/build")
	if w.Code != http.StatusOK {
		t.Fatalf("build status=%d body=%s", w.Code, w.Body.String())
	}
	var built struct {
		RequestID string          `json:"requestId"`
		Path      string          `json:"path"`
		Dashboard model.Dashboard `json:"dashboard"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &built); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if built.RequestID == "" {
		t.Fatalf("missing requestId")
	}
	if built.Path != filepath.Join(cfg.Paths.JSONDir, "2024-06.json") {
		t.Fatalf("path=%s", built.Path)
	}
	ov := built.Dashboard.Overview
	if ov.BankIncomeToDateExVAT != 10000 || ov.LessDepositsPrevMonthsExVAT != 200 {
		t.Fatalf("overview=%+v", ov)
	}
	if ov.NetRevenueRoomsExVAT != 2000 || ov.NetExtraIncomeExVAT != 500 || ov.TotalRevenueExVAT != 2500 {
		t.Fatalf("overview=%+v", ov)
	}

	w = do(t, s, http.MethodGet, "/api/dashboard/2024-06")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d", w.Code)
	}
	var stored model.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode stored: %v", err)
	}
	if stored.Month != "2024-06" || len(stored.Daily) != 2 || stored.Daily[0].SoldRooms != 12 {
		t.Fatalf("stored=%+v", stored)
	}

	w = do(t, s, http.MethodGet, "/api/months")
	var months struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &months); err != nil {
		t.Fatalf("decode months: %v", err)
	}
	if len(months.Items) != 1 || months.Items[0] != "2024-06" {
		t.Fatalf("months=%v", months.Items)
	}
	if s.store.Count() != 1 {
		t.Fatalf("cached=%d", s.store.Count())
	}
	if s.metrics.BuildCount("success") != 1 || s.metrics.CacheCount("hit") != 1 {
		t.Fatalf("builds=%v hits=%v", s.metrics.BuildCount("success"), s.metrics.CacheCount("hit"))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/dashboard/2024-06/build")

	w := do(t, s, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `rsdashboard_builds_total{status="missing_input"} 1`) {
		t.Fatalf("missing build counter in:\n%s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodOptions, "/api/months")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
