package app

import (
	"context"
	"log"

	"smartrubbish/internal/config"
	"smartrubbish/internal/db"
	"smartrubbish/internal/services"
	"smartrubbish/internal/storage"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides the storage stack and the domain services.
var Module = fx.Options(
	fx.Provide(
		config.Load,
		provideAdmins,
		provideDB,
		provideKV,
		provideStore,
		provideGeocoder,
		services.NewAccountService,
		services.NewReportService,
		services.NewNotificationService,
		services.NewMailService,
		services.NewTriageService,
		provideWeeklyReport,
	),
)

func provideAdmins(cfg *config.Config) ([]config.Admin, error) {
	return config.LoadAdmins(cfg.AdminsFile)
}

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close(conn)
		},
	})
	return conn, nil
}

func provideKV(cfg *config.Config, conn *gorm.DB) (storage.KV, error) {
	backend, err := storage.NewGormKV(conn, cfg.StorageQuota)
	if err != nil {
		return nil, err
	}
	return storage.NewCachedKV(backend, cfg.CacheSize), nil
}

func provideStore(cfg *config.Config, kv storage.KV) *storage.Adapter {
	store := storage.NewAdapter(kv, cfg.StorageNamespace)
	store.Init()
	return store
}

// provideGeocoder returns nil unless reverse geocoding is switched on.
func provideGeocoder(cfg *config.Config) services.Geocoder {
	if !cfg.GeocoderEnabled {
		return nil
	}
	log.Printf("Reverse geocoding via %s", cfg.GeocoderURL)
	return services.NewNominatimGeocoder(cfg.GeocoderURL)
}

func provideWeeklyReport(cfg *config.Config, reports *services.ReportService, accounts *services.AccountService) *services.WeeklyReportGenerator {
	return services.NewWeeklyReportGenerator(reports, accounts, cfg.Location())
}
