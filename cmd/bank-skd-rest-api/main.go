// cmd/bank-skd-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/turrs/bank-skd/internal/api/rest/v1"
	"github.com/turrs/bank-skd/internal/app"
	"github.com/turrs/bank-skd/internal/infrastructure/connector"
	"github.com/turrs/bank-skd/internal/infrastructure/gateway"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence"
	"github.com/turrs/bank-skd/internal/infrastructure/token"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services     *v1.Services
	issuer       *token.JWTIssuer
	expiryWorker *app.SessionExpiryWorker
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	repos, err := persistence.NewRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	// Initialize connectors
	ctx := context.Background()
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

	// Initialize services
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

	expiryWorker, err := app.NewSessionExpiryWorker(services.Tryouts, cfg.Tryout, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session expiry worker: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		services: &v1.Services{
			Auth:           services.Auth,
			UserAdmin:      services.UserAdmin,
			Packages:       services.Packages,
			Questions:      services.Questions,
			Tryouts:        services.Tryouts,
			Vouchers:       services.Vouchers,
			Payments:       services.Payments,
			Mentors:        services.Mentors,
			Chat:           services.Chat,
			Media:          services.Media,
			Stats:          services.Stats,
			MaxUploadBytes: cfg.MediaConnector.MaxUploadBytes,
		},
		issuer:       issuer,
		expiryWorker: expiryWorker,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and the session
// expiry worker and stops both on SIGINT or SIGTERM
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()
	r.Use(v1.ErrorLogger(log))

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, deps.services, deps.issuer)

	r.GET(v1.BasePath+"/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		deps.expiryWorker.Run(workerCtx)
	}()

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	stopWorker()
	select {
	case <-workerDone:
	case <-ctx.Done():
		log.Warn("Session expiry worker did not stop before the shutdown deadline")
	}

	log.Info("Server stopped gracefully")
	return nil
}
