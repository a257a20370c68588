package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"bluerhyno/internal/bootstrap/config"
	"bluerhyno/internal/bootstrap/database"
	"bluerhyno/internal/bootstrap/logging"
	"bluerhyno/internal/infrastructure/notify"
	"bluerhyno/internal/infrastructure/photostore"
	sqliterepo "bluerhyno/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "bluerhyno/internal/infrastructure/persistence/sqlite/uow"
	"bluerhyno/internal/ports"
	"bluerhyno/internal/usecase/quoting"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewQuotingRepository,
			fx.As(new(ports.QuotingRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(provideNotifier),
	fx.Provide(providePhotoStore),
	fx.Provide(provideQuotingService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideNotifier(ctx context.Context, cfg config.Config) (ports.Notifier, error) {
	if cfg.SMTP.Host == "" {
		logging.Warn(
			logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx")),
			"smtp host not configured, email delivery disabled",
		)
		return notify.NewLogNotifier(), nil
	}
	return notify.NewSMTPNotifier(cfg.SMTP)
}

func providePhotoStore(cfg config.Config) (ports.PhotoStore, error) {
	return photostore.NewLocal(cfg.Photos.Dir)
}

func provideQuotingService(
	repo ports.QuotingRepository,
	uow ports.UnitOfWork,
	notifier ports.Notifier,
	cfg config.Config,
) *quoting.Service {
	return quoting.NewService(repo, uow, notifier, quoting.Options{
		BusinessEmail: cfg.Quoting.BusinessEmail,
	})
}
