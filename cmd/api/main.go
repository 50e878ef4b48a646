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

	"github.com/cmlabs-hris/leave-tracker/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-tracker/internal/handler/http"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-tracker/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/leave-tracker/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/leave-tracker/internal/service/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/service/leave"
	"github.com/cmlabs-hris/leave-tracker/internal/service/master"
	userService "github.com/cmlabs-hris/leave-tracker/internal/service/user"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("error loading timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.Options{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	directoryRepo := postgresql.NewDirectoryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("error creating JWT service: %w", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, directoryRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, directoryRepo, loc)
	leaveService := leave.NewLeaveService(leaveRequestRepo, directoryRepo)
	masterService := master.NewMasterService(directoryRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.CORSOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		authService,
		appHTTP.NewHealthHandler(db),
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewMasterHandler(masterService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
