package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"rsdashboard/internal/config"
	"rsdashboard/internal/logging"
	"rsdashboard/internal/model"
	"rsdashboard/internal/parser"
	"rsdashboard/internal/report"
	"rsdashboard/internal/server"
	"rsdashboard/internal/util"
)

var (
	configPath = flag.String("config", "config.toml", "配置文件路径 (.toml / .yaml)")
	month      = flag.String("month", "", "报表月份 YYYY-MM (默认上一个自然月)")
	serve      = flag.Bool("serve", false, "生成后启动 HTTP 服务")
	port       = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	openURL    = flag.Bool("open", false, "服务启动后打开浏览器")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return 1
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("配置无效")
		return 1
	}
	if err := config.EnsureDirs(cfg); err != nil {
		log.WithError(err).Error("创建目录失败")
		return 1
	}

	period, err := cfg.ResolveMonth(*month, time.Now())
	if err != nil {
		log.WithError(err).Error("月份无效")
		return 1
	}

	if err := build(log, cfg, period); err != nil {
		if errors.Is(err, parser.ErrInputMissing) {
			log.WithError(err).Error("缺少输入报表，未写出任何文件")
		} else {
			log.WithError(err).Error("生成看板失败")
		}
		// 服务模式下仍可浏览历史月份
		if !*serve {
			return 1
		}
	}

	if !*serve {
		return 0
	}
	return runServer(log, cfg, period)
}

func build(log *logrus.Logger, cfg *config.AppConfig, period model.MonthPeriod) error {
	res, err := report.NewNormalizer(log).Run(report.Options{
		Month:       period,
		RawDir:      cfg.Paths.RawDir,
		RoomTypes:   model.NewCategoryMap(cfg.RoomTypeMap),
		ExtraIncome: model.NewCategoryMap(cfg.ExtraIncomeMap),
		VATRate:     cfg.VATRate,
		Targets:     cfg.Targets,
	}, report.Output{
		WorkingDir: cfg.Paths.WorkingDir,
		JSONDir:    cfg.Paths.JSONDir,
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"month":         period.String(),
		"json":          res.JSONPath,
		"daily_csv":     res.Debug.Daily,
		"roomtypes_csv": res.Debug.RoomTypes,
		"extras_csv":    res.Debug.Extras,
		"rooms_ex_vat":  res.Dashboard.Overview.NetRevenueRoomsExVAT,
		"extras_ex_vat": res.Dashboard.Overview.NetExtraIncomeExVAT,
		"total_ex_vat":  res.Dashboard.Overview.TotalRevenueExVAT,
	}).Info("看板已生成")
	return nil
}

func runServer(log *logrus.Logger, cfg *config.AppConfig, period model.MonthPeriod) int {
	listenPort, err := util.FindAvailablePort(cfg.Server.Port, 10)
	if err != nil {
		log.WithError(err).Error("没有可用端口")
		return 1
	}
	if listenPort != cfg.Server.Port {
		log.Warnf("端口 %d 被占用，改用 %d", cfg.Server.Port, listenPort)
	}

	srv := server.NewServer(cfg, log)
	addr := fmt.Sprintf(":%d", listenPort)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("服务启动中，监听端口 %d ...", listenPort)
		errCh <- srv.Run(addr)
	}()

	url := util.DashboardURL(listenPort, period.String())
	if *openURL {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			log.Warnf("无法自动打开浏览器，请手动访问: %s", url)
		}
	} else {
		log.Infof("请访问 %s", url)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.WithError(err).Error("服务启动失败")
		return 1
	case <-quit:
		log.Info("正在关闭服务...")
		return 0
	}
}
