package projection_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"debttrack/internal/projection"
)

func validConfig() projection.Config {
	return projection.Config{
		HorizonYears:               10,
		MonthlySavingsGrowthRate:   decimal.RequireFromString("0.004"),
		MonthlySavingsContribution: decimal.Zero,
		Strategy:                   projection.StrategySnowball,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid_config_passes", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("zero_horizon_rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 0
		if err := cfg.Validate(); !errors.Is(err, projection.ErrHorizonNotPositive) {
			t.Errorf("expected ErrHorizonNotPositive, got %v", err)
		}
	})

	t.Run("negative_horizon_rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = -3
		if err := cfg.Validate(); !errors.Is(err, projection.ErrHorizonNotPositive) {
			t.Errorf("expected ErrHorizonNotPositive, got %v", err)
		}
	})

	t.Run("excessive_horizon_rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = projection.MaxHorizonYears + 1
		if err := cfg.Validate(); !errors.Is(err, projection.ErrHorizonTooLong) {
			t.Errorf("expected ErrHorizonTooLong, got %v", err)
		}
	})

	t.Run("growth_rate_below_negative_one_rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.MonthlySavingsGrowthRate = decimal.RequireFromString("-1.5")
		if err := cfg.Validate(); !errors.Is(err, projection.ErrGrowthRateTooLow) {
			t.Errorf("expected ErrGrowthRateTooLow, got %v", err)
		}
	})

	t.Run("unknown_strategy_rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Strategy = "tsunami"
		if err := cfg.Validate(); !errors.Is(err, projection.ErrUnknownStrategy) {
			t.Errorf("expected ErrUnknownStrategy, got %v", err)
		}
	})

	t.Run("engine_construction_fails_on_bad_config", func(t *testing.T) {
		cfg := validConfig()
		cfg.HorizonYears = 0
		if _, err := projection.NewEngine(cfg); err == nil {
			t.Error("expected engine construction to fail")
		}
	})
}
