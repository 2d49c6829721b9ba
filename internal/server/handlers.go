package server

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rsdashboard/internal/exporter"
	"rsdashboard/internal/model"
	"rsdashboard/internal/parser"
	"rsdashboard/internal/report"
	"rsdashboard/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	VATRate     float64  `json:"vatRate"`
	RawDir      string   `json:"rawDir"`
	JSONDir     string   `json:"jsonDir"`
	RoomTypes   []string `json:"roomTypes"`
	ExtraIncome []string `json:"extraIncome"`
	MonthCount  int      `json:"monthCount"`
	CachedCount int      `json:"cachedCount"`
}

// GetStatus 获取系统状态
// GET /api/status
func (s *Server) GetStatus(c *gin.Context) {
	months, err := exporter.ListMonths(s.cfg.Paths.JSONDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{
		VATRate:     s.cfg.VATRate,
		RawDir:      s.cfg.Paths.RawDir,
		JSONDir:     s.cfg.Paths.JSONDir,
		RoomTypes:   model.NewCategoryMap(s.cfg.RoomTypeMap).Keys(),
		ExtraIncome: model.NewCategoryMap(s.cfg.ExtraIncomeMap).Keys(),
		MonthCount:  len(months),
		CachedCount: s.store.Count(),
	})
}

// ListMonths 已生成看板的月份（倒序）
// GET /api/months
func (s *Server) ListMonths(c *gin.Context) {
	months, err := exporter.ListMonths(s.cfg.Paths.JSONDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": months})
}

// GetDashboard 读取指定月份的看板
// GET /api/dashboard/:month
func (s *Server) GetDashboard(c *gin.Context) {
	month, err := model.ParseMonth(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := os.Stat(exporter.JSONPath(s.cfg.Paths.JSONDir, month))
	if err != nil {
		if os.IsNotExist(err) {
			s.store.Invalidate(month.String())
			c.JSON(http.StatusNotFound, gin.H{"error": "该月份尚未生成看板"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if doc, ok := s.store.GetDashboard(month.String(), info.ModTime()); ok {
		s.metrics.CacheHit()
		c.JSON(http.StatusOK, doc)
		return
	}
	s.metrics.CacheMiss()

	doc, err := exporter.ReadJSON(s.cfg.Paths.JSONDir, month)
	if err != nil {
		if errors.Is(err, exporter.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "该月份尚未生成看板"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.store.SetDashboard(doc, info.ModTime())
	c.JSON(http.StatusOK, doc)
}

// BuildDashboard 按当前配置重新生成指定月份的看板
// POST /api/dashboard/:month/build
func (s *Server) BuildDashboard(c *gin.Context) {
	month, err := model.ParseMonth(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := uuid.New().String()
	log := s.log.WithField("request_id", requestID)

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	started := time.Now()
	res, err := s.normalizer.Run(report.Options{
		Month:       month,
		RawDir:      s.cfg.Paths.RawDir,
		RoomTypes:   model.NewCategoryMap(s.cfg.RoomTypeMap),
		ExtraIncome: model.NewCategoryMap(s.cfg.ExtraIncomeMap),
		VATRate:     s.cfg.VATRate,
		Targets:     s.cfg.Targets,
	}, report.Output{
		WorkingDir: s.cfg.Paths.WorkingDir,
		JSONDir:    s.cfg.Paths.JSONDir,
	})
	record := store.BuildRecord{
		RequestID:  requestID,
		Month:      month.String(),
		StartedAt:  started,
		DurationMs: time.Since(started).Milliseconds(),
		OK:         err == nil,
	}
	if err != nil {
		record.Error = err.Error()
		s.store.RecordBuild(record)
		log.WithError(err).Error("生成看板失败")
		status, outcome := http.StatusInternalServerError, "error"
		if errors.Is(err, parser.ErrInputMissing) {
			status, outcome = http.StatusUnprocessableEntity, "missing_input"
		}
		s.metrics.ObserveBuild(outcome, time.Since(started))
		c.JSON(status, gin.H{"error": err.Error(), "requestId": requestID})
		return
	}

	s.store.RecordBuild(record)
	s.metrics.ObserveBuild("success", time.Since(started))
	if info, err := os.Stat(res.JSONPath); err == nil {
		s.store.SetDashboard(res.Dashboard, info.ModTime())
	} else {
		s.store.Invalidate(month.String())
	}

	log.WithField("duration_ms", record.DurationMs).Info("看板已重新生成")
	c.JSON(http.StatusOK, gin.H{
		"requestId": requestID,
		"path":      res.JSONPath,
		"dashboard": res.Dashboard,
	})
}

// ListBuilds 最近的生成记录（最新在前）
// GET /api/builds
func (s *Server) ListBuilds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.store.Builds()})
}
