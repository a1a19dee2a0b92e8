package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sessionreport/internal/gateway"
	"sessionreport/internal/report"
	"sessionreport/internal/session"
	"sessionreport/internal/stats"
	"sessionreport/internal/usecase"
)

type Config struct {
	// Session merging
	SessionGap              time.Duration
	SmallAmountThreshold    decimal.Decimal
	SmallAmountReconcileGap time.Duration

	// Aggregation
	ActiveHourFloor int
	AmountBinWidth  decimal.Decimal

	// Ingestion
	DefaultMerchantKeywords []string
	EventKeywords           []string
	Timezone                string

	// Report
	WaterFeePerTon decimal.Decimal
	OutputDir      string

	LogLevel string
}

func Load() *Config {
	return &Config{
		SessionGap:              getEnvDuration("SESSION_GAP", 10*time.Minute),
		SmallAmountThreshold:    getEnvDecimal("SMALL_AMOUNT_THRESHOLD", decimal.RequireFromString("0.1")),
		SmallAmountReconcileGap: getEnvDuration("SMALL_AMOUNT_RECONCILE_GAP", 20*time.Minute),

		ActiveHourFloor: getEnvInt("ACTIVE_HOUR_FLOOR", 6),
		AmountBinWidth:  getEnvDecimal("AMOUNT_BIN_WIDTH", decimal.RequireFromString("0.1")),

		DefaultMerchantKeywords: getEnvList("DEFAULT_MERCHANT_KEYWORDS", []string{"公寓", "宿舍"}),
		EventKeywords:           getEnvList("EVENT_KEYWORDS", []string{"消费"}),
		Timezone:                getEnv("TIMEZONE", "Local"),

		WaterFeePerTon: getEnvDecimal("WATER_FEE_PER_TON", decimal.NewFromInt(23)),
		OutputDir:      getEnv("OUTPUT_DIR", "outputs"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SessionGap < 0 {
		errors = append(errors, fmt.Sprintf("invalid session gap %v: must not be negative", c.SessionGap))
	}
	if c.SmallAmountReconcileGap < 0 {
		errors = append(errors, fmt.Sprintf("invalid small amount reconcile gap %v: must not be negative", c.SmallAmountReconcileGap))
	}
	if c.SmallAmountThreshold.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid small amount threshold %s: must not be negative", c.SmallAmountThreshold))
	}

	if c.ActiveHourFloor < 0 || c.ActiveHourFloor > 23 {
		errors = append(errors, fmt.Sprintf("invalid active hour floor %d: must be between 0 and 23", c.ActiveHourFloor))
	}
	if !c.AmountBinWidth.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid amount bin width %s: must be positive", c.AmountBinWidth))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.WaterFeePerTon.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid water fee per ton %s: must not be negative", c.WaterFeePerTon))
	}
	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves Timezone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) SessionOptions() session.Options {
	return session.Options{
		MaxGap:               c.SessionGap,
		SmallAmountThreshold: c.SmallAmountThreshold,
		ReconcileGap:         c.SmallAmountReconcileGap,
	}
}

func (c *Config) StatsOptions() stats.Options {
	return stats.Options{
		ActiveHourFloor: c.ActiveHourFloor,
		BinWidth:        c.AmountBinWidth,
	}
}

func (c *Config) UsecaseOptions() usecase.Options {
	return usecase.Options{
		Session:                 c.SessionOptions(),
		Stats:                   c.StatsOptions(),
		DefaultMerchantKeywords: c.DefaultMerchantKeywords,
	}
}

func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Location:      c.Location(),
		EventKeywords: c.EventKeywords,
	}
}

func (c *Config) ReportOptions() report.Options {
	return report.Options{
		WaterFeePerTon:       c.WaterFeePerTon,
		SessionGap:           c.SessionGap,
		SmallAmountThreshold: c.SmallAmountThreshold,
		ReconcileGap:         c.SmallAmountReconcileGap,
		ActiveHourFloor:      c.ActiveHourFloor,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
