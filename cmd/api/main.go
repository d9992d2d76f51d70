package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brainiax/attendance-backend-go/internal/config"
	appHTTP "github.com/brainiax/attendance-backend-go/internal/handler/http"
	"github.com/brainiax/attendance-backend-go/internal/pkg/clock"
	"github.com/brainiax/attendance-backend-go/internal/pkg/cron"
	"github.com/brainiax/attendance-backend-go/internal/pkg/database"
	"github.com/brainiax/attendance-backend-go/internal/pkg/jwt"
	"github.com/brainiax/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/brainiax/attendance-backend-go/internal/service/attendance"
	authService "github.com/brainiax/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/brainiax/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/brainiax/attendance-backend-go/internal/service/employee"
	reportService "github.com/brainiax/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	sysClock := clock.NewSystemClock()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, sysClock)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo, auditRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, employeeRepo, sysClock)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, sysClock).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Auth:            appHTTP.NewAuthHandler(authSvc),
		Attendance:      appHTTP.NewAttendanceHandler(attendanceSvc),
		AdminAttendance: appHTTP.NewAdminAttendanceHandler(attendanceSvc),
		Employee:        appHTTP.NewEmployeeHandler(employeeSvc),
		Dashboard:       appHTTP.NewDashboardHandler(dashboardSvc),
		Report:          appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
