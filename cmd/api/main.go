package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/config"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	appHTTP "github.com/cmlabs-hris/attendance-backend/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/telemetry"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
	"github.com/cmlabs-hris/attendance-backend/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend/internal/service/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/service/file"
	settingsService "github.com/cmlabs-hris/attendance-backend/internal/service/settings"
	shiftService "github.com/cmlabs-hris/attendance-backend/internal/service/shift"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg.Telemetry)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	clock, err := worktime.NewClock(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Invalid attendance timezone: ", err)
	}

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	var fileStorage storage.FileStorage
	uploadsDir := ""
	switch cfg.Storage.Type {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
		fileStorage = local
		uploadsDir = local.BasePath()
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	shiftSvc := shiftService.NewShiftService(txManager, shiftRepo, assignmentRepo, userRepo, cfg.Attendance.DefaultToleranceMins)
	resolver := shiftService.NewResolver(assignmentRepo, shiftRepo, userRepo, clock, cfg.Attendance.ShiftLegacyFallback)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		shiftRepo,
		resolver,
		settingsSvc,
		fileService,
		clock,
	)

	_, _, err = settingsSvc.Provision(ctx, settings.ProvisionDefaults{
		OfficeName:    cfg.Office.Name,
		OfficeAddress: cfg.Office.Address,
		Latitude:      cfg.Office.Latitude,
		Longitude:     cfg.Office.Longitude,
		RadiusMeters:  cfg.Office.RadiusMeters,
	})
	if err != nil {
		log.Fatal("Failed to provision office settings: ", err)
	}

	scheduler := cron.NewScheduler()
	if cfg.Attendance.AutoCloseInterval > 0 {
		cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.AutoCloseGrace).RegisterJobs(scheduler, cfg.Attendance.AutoCloseInterval)
	}
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Schedule:   appHTTP.NewScheduleHandler(shiftSvc),
	}, uploadsDir)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", server.Addr, "timezone", clock.Location().String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	scheduler.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracing shutdown failed", "error", err)
	}
}
