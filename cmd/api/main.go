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

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timebank-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timebank-backend-go/internal/service/attendance"
	bankService "github.com/cmlabs-hris/timebank-backend-go/internal/service/bank"
	employeeService "github.com/cmlabs-hris/timebank-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/timebank-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/timebank-backend-go/internal/service/schedule"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	calendar, err := holiday.NewCalendar(cfg.Ledger.HolidayRegion)
	if err != nil {
		return err
	}

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	movementRepo := postgresql.NewBankMovementRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, movementRepo)
	scheduleSvc := scheduleService.NewScheduleService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, employeeRepo, attendanceRepo, movementRepo, calendar)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, attendanceRepo, movementRepo, calendar)
	bankSvc := bankService.NewBankService(tx, employeeRepo, movementRepo, payrollSvc)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Bank:       appHTTP.NewBankHandler(bankSvc),
		Holiday:    appHTTP.NewHolidayHandler(calendar),
	})

	scheduler := cron.NewScheduler(ctx)
	if err := cron.NewLedgerJobs(bankSvc).RegisterJobs(scheduler, cfg.Ledger.AuditInterval); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
