package cmd

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CourierAPIURL string
	CourierAPIKey string
	QuoteTimeout  time.Duration

	FunctionsURL string
	FunctionsKey string

	// GatewayAPIURL and GatewaySecretKey enable server-side verification of
	// successful transactions. Verification is skipped when either is empty.
	GatewayAPIURL    string
	GatewaySecretKey string
	PaymentWindow    time.Duration

	FlatRatePrice  kernel.Money
	FlatRateDays   int
	ParcelWeightKg float64

	SessionIdleTTL       time.Duration
	SessionRetention     time.Duration
	SessionSweepSchedule string

	FinalizeSchedule  string
	FinalizeBatchSize int

	LogLevel    string
	LogSuppress []string
}
