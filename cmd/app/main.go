package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderhub/cmd"
	httpadapter "orderhub/internal/adapters/in/http"
	"orderhub/internal/adapters/out/postgres"
	"orderhub/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer app.Close()

	jobManager := jobs.NewJobManager(
		app.CreateCleanupServiceRequestsCommandHandler(),
		configs.ServiceRequestRetention,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	retention := 24 * time.Hour
	if raw := goDotEnvVariable("SERVICE_REQUEST_RETENTION"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid SERVICE_REQUEST_RETENTION: %v", err)
		}
		retention = parsed
	}

	taxRate := goDotEnvVariable("TAX_RATE")
	if taxRate == "" {
		taxRate = "0.08"
	}

	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:                 goDotEnvVariable("AMQP_URL"),
		AmqpExchange:            goDotEnvVariable("AMQP_EXCHANGE"),
		JWTSecret:               goDotEnvVariable("JWT_SECRET"),
		TaxRate:                 taxRate,
		ServiceRequestRetention: retention,
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCheckoutOrderCommandHandler(),
		app.CreateAdvanceOrderCommandHandler(),
		app.CreatePerformOrderActionCommandHandler(),
		app.CreateCreateServiceRequestCommandHandler(),
		app.CreateResolveServiceRequestCommandHandler(),
		app.CreatePurgeOrdersCommandHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateGetTableOrdersQueryHandler(),
		app.CreateListPendingServiceRequestsQueryHandler(),
		app.Catalog(),
		app.Hub(),
		[]byte(configs.JWTSecret),
	)
	server.RegisterRoutes(e)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(rootCtx)
	group.Go(func() error {
		return e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		e.Logger.Info(err)
	}
}
