package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite-console/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-lite-console/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
	"github.com/cmlabs-hris/hrms-lite-console/internal/repository/hrmsapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-console/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-console/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-console/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		fmt.Println("Invalid LOG_LEVEL:", err)
		os.Exit(1)
	}

	routerOpts := appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Env:            cfg.App.Env,
		LogLevel:       level,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	slog.SetDefault(appHTTP.NewLogger(routerOpts))

	client, err := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	if err != nil {
		slog.Error("Error creating backend client", "error", err)
		os.Exit(1)
	}

	employeeRepo := hrmsapi.NewEmployeeRepository(client)
	attendanceRepo := hrmsapi.NewAttendanceRepository(client)
	dashboardRepo := hrmsapi.NewDashboardRepository(client)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	noticeService := notice.NewNoticeService(cfg.Notice.Secret, cfg.Notice.TTL, cfg.IsProduction())
	renderer, err := appHTTP.NewRenderer(cfg.App.Name)
	if err != nil {
		slog.Error("Error parsing templates", "error", err)
		os.Exit(1)
	}

	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, renderer)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, attendanceSvc, noticeService, renderer)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, noticeService, renderer)

	router := appHTTP.NewRouter(
		routerOpts,
		noticeService,
		dashboardHandler,
		employeeHandler,
		attendanceHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+srv.Addr, "backend", client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
