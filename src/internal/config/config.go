package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/account-transaction-engine/src/internal/engine"
	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=account_transactions_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultChannelID = "AtmChannel"
const defaultChannelKey = "AtmChannelKey001"
const defaultTimezone = "UTC"
const defaultMaxAttempts = 3

type Config struct {
	DatabaseDSN    string
	MigrationsDir  string
	HTTPAddr       string
	ChannelID      string
	ChannelKey     string
	ChannelKeyHash string
	Location       *time.Location
	MaxAttempts    int
	DBMaxOpenConns int
	DBMaxIdleConns int
	Limits         engine.Limits
}

func Load() (Config, error) {
	var errs []string

	conn := envOrDefault("DATABASE_DSN", defaultConnectionString)

	location, err := time.LoadLocation(envOrDefault("ENGINE_TIMEZONE", defaultTimezone))
	if err != nil {
		errs = append(errs, fmt.Sprintf("ENGINE_TIMEZONE: %v", err))
	}

	maxAttempts, err := positiveIntEnv("TRANSACTION_MAX_ATTEMPTS", defaultMaxAttempts)
	if err != nil {
		errs = append(errs, err.Error())
	}

	// Zero leaves the pool size to the repository defaults.
	dbMaxOpenConns, err := positiveIntEnv("DB_MAX_OPEN_CONNS", 0)
	if err != nil {
		errs = append(errs, err.Error())
	}
	dbMaxIdleConns, err := positiveIntEnv("DB_MAX_IDLE_CONNS", 0)
	if err != nil {
		errs = append(errs, err.Error())
	}

	limits := engine.DefaultLimits()
	for _, override := range []struct {
		key    string
		target *decimal.Decimal
	}{
		{key: "WITHDRAW_SINGLE_LIMIT", target: &limits.SingleWithdrawal},
		{key: "WITHDRAW_DAILY_LIMIT", target: &limits.DailyWithdrawal},
		{key: "WITHDRAW_BILL_DENOMINATION", target: &limits.BillDenomination},
		{key: "DEPOSIT_SINGLE_LIMIT", target: &limits.SingleDeposit},
	} {
		raw := strings.TrimSpace(os.Getenv(override.key))
		if raw == "" {
			continue
		}
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be numeric", override.key))
			continue
		}
		*override.target = parsed
	}
	if err := limits.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	migrationsDir := envOrDefault("MIGRATIONS_DIR", filepath.Join("src", "migrations"))

	if len(errs) > 0 {
		return Config{}, errors.New(strings.Join(errs, "; "))
	}

	return Config{
		DatabaseDSN:    normalizeConnectionString(conn),
		MigrationsDir:  migrationsDir,
		HTTPAddr:       envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		ChannelID:      envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:     envOrDefault("CHANNEL_KEY", defaultChannelKey),
		ChannelKeyHash: strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH")),
		Location:       location,
		MaxAttempts:    maxAttempts,
		DBMaxOpenConns: dbMaxOpenConns,
		DBMaxIdleConns: dbMaxIdleConns,
		Limits:         limits,
	}, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback, fmt.Errorf("%s must be a positive integer", key)
	}
	return parsed, nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// normalizeConnectionString turns an ADO style "Key=Value;..." string into
// the space separated form lib/pq expects. Anything that does not parse as
// such is returned unchanged so plain URLs keep working.
func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
