package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"smartrubbish/internal/app"
	"smartrubbish/internal/config"
	"smartrubbish/internal/middleware"
	"smartrubbish/internal/router"
	"smartrubbish/internal/sentry"
	"smartrubbish/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		app.Module,
		fx.Provide(ProvideServices, ProvideRouter),
		fx.Invoke(StartServer),
	).Run()
}

func ProvideServices(
	accounts *services.AccountService,
	reports *services.ReportService,
	notifications *services.NotificationService,
	triage *services.TriageService,
	weekly *services.WeeklyReportGenerator) router.Services {
	return router.Services{
		Accounts:      accounts,
		Reports:       reports,
		Notifications: notifications,
		Triage:        triage,
		Weekly:        weekly,
	}
}

func ProvideRouter(cfg *config.Config, s router.Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := sentry.Init(cfg.SentryDSN, cfg.Env); err != nil {
		log.Printf("⚠️ Sentry init failed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(sentry.Middleware())

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400 * 7, Secure: cfg.IsProduction()})
	r.Use(sessions.Sessions("smart_rubbish_session", store))

	// Middleware
	r.Use(middleware.TraceID())
	r.Use(middleware.LoadUser(s.Accounts))

	router.RegisterRoutes(r, s)
	return r
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Smart Rubbish server starting on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			defer sentry.Flush()
			return srv.Shutdown(ctx)
		},
	})
}
