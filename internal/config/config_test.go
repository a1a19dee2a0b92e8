package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.SessionGap)
	assert.True(t, cfg.SmallAmountThreshold.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, 20*time.Minute, cfg.SmallAmountReconcileGap)
	assert.Equal(t, 6, cfg.ActiveHourFloor)
	assert.True(t, cfg.AmountBinWidth.Equal(decimal.RequireFromString("0.1")))
	assert.Equal(t, []string{"公寓", "宿舍"}, cfg.DefaultMerchantKeywords)
	assert.Equal(t, []string{"消费"}, cfg.EventKeywords)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_GAP", "15m")
	t.Setenv("SMALL_AMOUNT_THRESHOLD", "0.25")
	t.Setenv("SMALL_AMOUNT_RECONCILE_GAP", "30m")
	t.Setenv("ACTIVE_HOUR_FLOOR", "7")
	t.Setenv("AMOUNT_BIN_WIDTH", "0.5")
	t.Setenv("DEFAULT_MERCHANT_KEYWORDS", "Dorm, Apartment ,")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.SessionGap)
	assert.Equal(t, "0.25", cfg.SmallAmountThreshold.String())
	assert.Equal(t, 30*time.Minute, cfg.SmallAmountReconcileGap)
	assert.Equal(t, 7, cfg.ActiveHourFloor)
	assert.Equal(t, "0.5", cfg.AmountBinWidth.String())
	assert.Equal(t, []string{"Dorm", "Apartment"}, cfg.DefaultMerchantKeywords)
	assert.Equal(t, time.UTC, cfg.Location())
	require.NoError(t, cfg.Validate())

	opts := cfg.SessionOptions()
	assert.Equal(t, 15*time.Minute, opts.MaxGap)
	assert.Equal(t, 30*time.Minute, opts.ReconcileGap)
	assert.Equal(t, 7, cfg.StatsOptions().ActiveHourFloor)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("SESSION_GAP", "ten minutes")
	t.Setenv("ACTIVE_HOUR_FLOOR", "six")
	t.Setenv("AMOUNT_BIN_WIDTH", "wide")

	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.SessionGap)
	assert.Equal(t, 6, cfg.ActiveHourFloor)
	assert.Equal(t, "0.1", cfg.AmountBinWidth.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{
			name:    "negative session gap",
			mutate:  func(c *Config) { c.SessionGap = -time.Minute },
			wantMsg: "invalid session gap",
		},
		{
			name:    "hour floor out of range",
			mutate:  func(c *Config) { c.ActiveHourFloor = 24 },
			wantMsg: "invalid active hour floor 24",
		},
		{
			name:    "zero bin width",
			mutate:  func(c *Config) { c.AmountBinWidth = decimal.Zero },
			wantMsg: "invalid amount bin width",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantMsg: "invalid timezone 'Mars/Olympus'",
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantMsg: "output directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.SessionGap = -time.Minute
	cfg.OutputDir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session gap")
	assert.Contains(t, err.Error(), "output directory cannot be empty")
}
