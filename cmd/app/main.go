package main

import (
	"checkout/cmd"
	httpin "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/logging"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs)

	db, err := openDatabase(configs, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newWebServer(app)
	go startWebServer(e, configs.HTTPPort)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
	jobManager.StopAll()
	app.Shutdown()
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		CourierAPIURL: goDotEnvVariable("COURIER_API_URL"),
		CourierAPIKey: goDotEnvVariable("COURIER_API_KEY"),
		QuoteTimeout:  durationVariable("QUOTE_TIMEOUT", 10*time.Second),

		FunctionsURL: goDotEnvVariable("FUNCTIONS_URL"),
		FunctionsKey: goDotEnvVariable("FUNCTIONS_KEY"),

		GatewayAPIURL:    goDotEnvVariable("GATEWAY_API_URL"),
		GatewaySecretKey: goDotEnvVariable("GATEWAY_SECRET_KEY"),
		PaymentWindow:    durationVariable("PAYMENT_WINDOW", 15*time.Minute),

		FlatRatePrice:  moneyVariable("FLAT_RATE_PRICE", "95.00"),
		FlatRateDays:   intVariable("FLAT_RATE_DAYS", 5),
		ParcelWeightKg: floatVariable("PARCEL_WEIGHT_KG", 2.0),

		SessionIdleTTL:       durationVariable("SESSION_IDLE_TTL", time.Hour),
		SessionRetention:     durationVariable("SESSION_RETENTION", 15*time.Minute),
		SessionSweepSchedule: stringVariable("SESSION_SWEEP_SCHEDULE", "0 * * * * *"),

		FinalizeSchedule:  stringVariable("FINALIZE_SCHEDULE", "*/30 * * * * *"),
		FinalizeBatchSize: intVariable("FINALIZE_BATCH_SIZE", 50),

		LogLevel:    stringVariable("LOG_LEVEL", "info"),
		LogSuppress: listVariable("LOG_SUPPRESS"),
	}
	return config
}

var loadDotEnv = sync.OnceFunc(func() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
})

func goDotEnvVariable(key string) string {
	loadDotEnv()
	return os.Getenv(key)
}

func stringVariable(key, fallback string) string {
	if v := strings.TrimSpace(goDotEnvVariable(key)); v != "" {
		return v
	}
	return fallback
}

func listVariable(key string) []string {
	var out []string
	for _, v := range strings.Split(goDotEnvVariable(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	v := stringVariable(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

func intVariable(key string, fallback int) int {
	v := stringVariable(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}

func floatVariable(key string, fallback float64) float64 {
	v := stringVariable(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return f
}

func moneyVariable(key, fallback string) kernel.Money {
	m, err := kernel.MoneyFromString(stringVariable(key, fallback))
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return m
}

func newLogger(configs cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configs.LogLevel)); err != nil {
		log.Fatalf("Invalid LOG_LEVEL: %v", err)
	}

	rules := make([]logging.Rule, 0, len(configs.LogSuppress))
	for _, msg := range configs.LogSuppress {
		rules = append(rules, logging.DropMessageContaining(msg))
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(logging.NewFilterHandler(handler, rules...))
}

func openDatabase(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	dbLogger := gormlogger.New(
		slog.NewLogLogger(logger.With("component", "gorm").Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	return gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	httpin.RegisterDocs(e)

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		log.Fatalf("Failed to load OpenAPI document: %v", err)
	}
	validator, err := httpin.RequestValidator(doc)
	if err != nil {
		log.Fatalf("Failed to build request validator: %v", err)
	}
	app.CreateServer().Register(e, validator)

	return e
}

func startWebServer(e *echo.Echo, port string) {
	err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
