package server

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"rsdashboard/internal/config"
	"rsdashboard/internal/metrics"
	"rsdashboard/internal/report"
	"rsdashboard/internal/store"
)

// Server HTTP服务器：只读浏览已生成的看板，并可按月触发重新生成
type Server struct {
	router     *gin.Engine
	cfg        *config.AppConfig
	normalizer *report.Normalizer
	store      *store.MemoryStore
	metrics    *metrics.Metrics
	log        logrus.FieldLogger

	// 同一时间只允许一次生成
	buildMu sync.Mutex
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log *logrus.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	s := &Server{
		router:     router,
		cfg:        cfg,
		normalizer: report.NewNormalizer(log),
		store:      store.NewMemoryStore(),
		metrics:    metrics.New(),
		log:        log,
	}
	s.setupRoutes()
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		api.GET("/status", s.GetStatus)
		api.GET("/months", s.ListMonths)
		api.GET("/dashboard/:month", s.GetDashboard)
		api.POST("/dashboard/:month/build", s.BuildDashboard)
		api.GET("/builds", s.ListBuilds)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Debug("http request")
	}
}
