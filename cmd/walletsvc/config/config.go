package config

import (
	"flag"
	"os"
	"time"

	"momo-wallet/internal/momowallet"
	"momo-wallet/internal/momowallet/data"
	"momo-wallet/internal/momowallet/data/database"
	"momo-wallet/internal/momowallet/provider"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
)

type Config struct {
	Server          momowallet.Config
	JWTConfig       JWTConfig
	DB              database.Config
	MTN             provider.MTNConfig
	Airtel          provider.AirtelConfig
	CallbackSecrets map[data.Provider]string
	ShutdownTimeout time.Duration
}

type JWTConfig struct {
	Algorithm      string
	Secret         string
	ExpirationTime time.Duration
}

func Load() (*Config, error) {
	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	dbConnectionString := flag.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	return &Config{
		Server: momowallet.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		JWTConfig: JWTConfig{
			Algorithm:      "HS256",
			Secret:         envOr("JWT_SECRET", "secret"),
			ExpirationTime: time.Hour,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			RetryAttemptDelays: []time.Duration{
				time.Second,
				time.Second * 3,
				time.Second * 5,
			},
		},
		MTN: provider.MTNConfig{
			BaseURL:         os.Getenv("MTN_BASE_URL"),
			SubscriptionKey: os.Getenv("MTN_DISBURSEMENT_SUBS_KEY"),
			UserID:          os.Getenv("MTN_DISBURSEMENT_USER_ID"),
			APIKey:          os.Getenv("MTN_DISBURSEMENT_API_KEY"),
			TargetEnv:       envOr("MTN_TARGET_ENV", "sandbox"),
			CallbackURL:     os.Getenv("MTN_CALLBACK_URL"),
			Currency:        "UGX",
		},
		Airtel: provider.AirtelConfig{
			BaseURL:      os.Getenv("AIRTEL_BASE_URL"),
			ClientID:     os.Getenv("AIRTEL_CLIENT_ID"),
			ClientSecret: os.Getenv("AIRTEL_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("AIRTEL_CALLBACK_URL"),
			Currency:     "UGX",
		},
		CallbackSecrets: map[data.Provider]string{
			data.MTNProvider:    os.Getenv("MTN_CALLBACK_SECRET"),
			data.AirtelProvider: os.Getenv("AIRTEL_CALLBACK_SECRET"),
		},
		ShutdownTimeout: time.Second * 5,
	}, nil
}

func envOr(key, fallback string) string {
	if valStr, ok := os.LookupEnv(key); ok {
		return valStr
	}
	return fallback
}
