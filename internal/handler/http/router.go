package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authService auth.AuthService,
	healthHandler HealthHandler,
	authHandler AuthHandler,
	userHandler UserHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.Authenticate(authService))

			r.Get("/me", authHandler.Me)

			r.With(middleware.RequirePermission(user.PermissionUserManage)).Post("/users", userHandler.Create)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Post("/", attendanceHandler.Mark)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/", attendanceHandler.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceReport)).Get("/monthly", attendanceHandler.Monthly)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.Submit)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", leaveHandler.ListMine)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Put("/{id}", leaveHandler.Edit)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Delete("/{id}", leaveHandler.Delete)

				r.With(middleware.RequirePermission(user.PermissionLeaveViewTeam)).Get("/team", leaveHandler.ListTeam)
				r.With(middleware.RequirePermission(user.PermissionLeaveProcess)).Post("/{id}/process", leaveHandler.Process)
			})

			r.Route("/master", func(r chi.Router) {
				r.Get("/roles", masterHandler.ListRoles)
				r.Get("/leave-types", masterHandler.ListLeaveTypes)
				r.Get("/leave-statuses", masterHandler.ListLeaveStatuses)
			})
		})
	})
	return r
}
