package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskhub/internal/api/router"
	"taskhub/internal/pkg/config"
	"taskhub/internal/pkg/database"
	"taskhub/internal/pkg/logger"
	"taskhub/internal/scheduler"
	"taskhub/internal/server"
)

var (
	configFile = flag.String("config", "", "config file path (e.g. -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "print version and exit")
)

const (
	appVersion = "1.0.0"
	appName    = "taskhubd"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config and logger
	var cfg *config.Config
	{
		configPath := getConfigPath()

		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("load config: %v\n", err)
			os.Exit(1)
		}
		cfg = c

		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("init logger: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s", configPath))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("%s starting", appName), zap.String("version", appVersion))

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	// protocol server
	srv := server.New(&cfg.Server, database.GetDB(), logger.Log)
	if err := srv.Start(); err != nil {
		logger.Fatal("start protocol server", zap.Error(err))
	}

	// housekeeping scheduler
	var taskScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		taskScheduler = scheduler.NewScheduler(database.GetDB(), logger.Log)
		if err := taskScheduler.Start(&cfg.Scheduler); err != nil {
			logger.Warn("start scheduler", zap.Error(err))
		}
	}

	// optional admin HTTP endpoint
	var adminSrv *http.Server
	if cfg.Admin.Enabled {
		r := router.Setup(&cfg.Admin, database.GetDB(), srv.ActiveSessions)
		addr := fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
		adminSrv = &http.Server{
			Addr:    addr,
			Handler: r,
		}
		go func() {
			logger.Info("admin endpoint started", zap.String("address", addr))
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("admin endpoint failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	if taskScheduler != nil {
		taskScheduler.Stop()
	}

	if adminSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := adminSrv.Shutdown(ctx); err != nil {
			logger.Error("admin endpoint shutdown", zap.Error(err))
		}
	}

	srv.Shutdown()

	logger.Info("stopped")
}

// getConfigPath resolves the config path: flag, then env, then default.
func getConfigPath() string {
	if *configFile != "" {
		return *configFile
	}
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}
	return "configs/config.yaml"
}
