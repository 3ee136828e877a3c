package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/turrs/bank-skd/internal/app"
	"github.com/turrs/bank-skd/internal/infrastructure/connector"
	"github.com/turrs/bank-skd/internal/infrastructure/gateway"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence"
	"github.com/turrs/bank-skd/internal/infrastructure/token"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// environment is what a command needs to talk to the database
type environment struct {
	cfg      *config.RestConfig
	logger   logger.Logger
	db       *gorm.DB
	services *app.Services
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadEnvironment reads the --config flag, opens the database and, when
// withServices is set, wires the application services on top of it.
func loadEnvironment(cmd *cobra.Command, withServices bool) (*environment, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	env := &environment{cfg: cfg, logger: loggerInstance, db: db}
	if !withServices {
		return env, nil
	}

	if env.services, err = buildServices(cmd.Context(), cfg, db, loggerInstance); err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	return env, nil
}

func buildServices(ctx context.Context, cfg *config.RestConfig, db *gorm.DB, log logger.Logger) (*app.Services, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	repos, err := persistence.NewRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	mediaConnector, err := connector.NewMediaConnector(ctx, &cfg.MediaConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create media connector: %w", err)
	}

	checkoutGateway, err := gateway.NewGateway(&cfg.Billing, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway: %w", err)
	}

	issuer, err := token.NewJWTIssuer(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	services, err := app.NewServices(app.Dependencies{
		Repositories:   repos,
		MediaConnector: mediaConnector,
		Gateway:        checkoutGateway,
		Issuer:         issuer,
		Auth:           cfg.Auth,
		Tryout:         cfg.Tryout,
		Billing:        &cfg.Billing,
		MaxUploadBytes: cfg.MediaConnector.MaxUploadBytes,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return services, nil
}

func (env *environment) close() {
	if err := persistence.CloseDB(env.db); err != nil {
		env.logger.Warn("failed to close database: ", err)
	}
}
