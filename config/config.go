// Package config loads simulation settings from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config describes one simulation run.
type Config struct {
	Platform          string
	Pair              domain.Pair
	Interval          string
	CandleLimit       int
	Period            time.Duration
	NotionalQuoteSize decimal.Decimal
	Side              domain.Side
	FeeRate           decimal.Decimal
	Leverage          decimal.Decimal
	// CandleFile path to a CSV candle series, used when Platform is "csv".
	CandleFile string
	// Rounding static rounding rules; required for the csv platform,
	// overrides exchange metadata elsewhere when set.
	Rounding *domain.SymbolRoundingRules
	// RunsDir directory of the WAL run journal.
	RunsDir string
}

type ConfigTmp struct {
	Platform          string        `yaml:"platform"`
	Pair              string        `yaml:"pair"`
	Interval          string        `yaml:"interval"`
	CandleLimit       int           `yaml:"candle_limit"`
	Period            time.Duration `yaml:"period"`
	NotionalQuoteSize string        `yaml:"notional_quote_size"`
	Side              string        `yaml:"side"`
	FeeRate           string        `yaml:"fee_rate"`
	Leverage          string        `yaml:"leverage,omitempty"`
	CandleFile        string        `yaml:"candle_file,omitempty"`
	Rounding          *RoundingTmp  `yaml:"rounding,omitempty"`
	RunsDir           string        `yaml:"runs_dir,omitempty"`
}

type RoundingTmp struct {
	BaseVolumePrecision  int32  `yaml:"base_volume_precision"`
	QuoteVolumePrecision int32  `yaml:"quote_volume_precision"`
	PricePrecision       int32  `yaml:"price_precision"`
	MinBaseSize          string `yaml:"min_base_size,omitempty"`
	MinQuoteSize         string `yaml:"min_quote_size,omitempty"`
}

// Get parses configuration from --config YAML when provided, otherwise from
// CLI flags.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pairFlag := flag.String("pair", "BTC_USDT", "trade pair, example: BTC_USDT")
	platform := flag.String("platform", "binance", "candle source: binance, bybit, hyperliquid or csv")
	interval := flag.String("interval", "1m", "candle interval, example: 1m, 1h")
	limit := flag.Int("limit", 500, "number of candles to replay")
	period := flag.Duration("period", 5*time.Minute, "distance between simulated orders")
	quoteSize := flag.String("quotesize", "100", "quote amount traded each period")
	side := flag.String("side", "buy", "trade side: buy or sell")
	feeRate := flag.String("feerate", "0.001", "trading fee fraction")
	leverage := flag.String("leverage", "1", "notional multiplier per period")
	candleFile := flag.String("candlefile", "", "path to CSV candles (csv platform)")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	cfg := Config{
		Platform:    *platform,
		Interval:    *interval,
		CandleLimit: *limit,
		Period:      *period,
		CandleFile:  *candleFile,
	}

	var err error
	cfg.Pair, err = pairFromString(*pairFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --pair provided, --pair=%s", *pairFlag)
	}
	cfg.Side, err = domain.SideFromString(*side)
	if err != nil {
		return nil, fmt.Errorf("invalid --side provided, --side=%s", *side)
	}
	cfg.NotionalQuoteSize, err = decimal.NewFromString(*quoteSize)
	if err != nil {
		return nil, fmt.Errorf("invalid --quotesize provided, --quotesize=%s", *quoteSize)
	}
	cfg.FeeRate, err = decimal.NewFromString(*feeRate)
	if err != nil {
		return nil, fmt.Errorf("invalid --feerate provided, --feerate=%s", *feeRate)
	}
	cfg.Leverage, err = decimal.NewFromString(*leverage)
	if err != nil {
		return nil, fmt.Errorf("invalid --leverage provided, --leverage=%s", *leverage)
	}

	return []Config{cfg}, nil
}

func getYaml(path string) ([]Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmp []ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return nil, err
	}

	configs := make([]Config, 0, len(tmp))
	for i, c := range tmp {
		converted, err := c.toConfig()
		if err != nil {
			return nil, fmt.Errorf("config entry %d: %w", i, err)
		}
		configs = append(configs, converted)
	}

	return configs, nil
}

func (c ConfigTmp) toConfig() (Config, error) {
	cfg := Config{
		Platform:    c.Platform,
		Interval:    c.Interval,
		CandleLimit: c.CandleLimit,
		Period:      c.Period,
		CandleFile:  c.CandleFile,
		RunsDir:     c.RunsDir,
	}

	var err error
	cfg.Pair, err = pairFromString(c.Pair)
	if err != nil {
		return Config{}, err
	}
	cfg.Side, err = domain.SideFromString(c.Side)
	if err != nil {
		return Config{}, err
	}
	cfg.NotionalQuoteSize, err = decimal.NewFromString(c.NotionalQuoteSize)
	if err != nil {
		return Config{}, fmt.Errorf("invalid notional_quote_size %q: %w", c.NotionalQuoteSize, err)
	}
	cfg.FeeRate, err = decimal.NewFromString(c.FeeRate)
	if err != nil {
		return Config{}, fmt.Errorf("invalid fee_rate %q: %w", c.FeeRate, err)
	}

	cfg.Leverage = decimal.NewFromInt(1)
	if c.Leverage != "" {
		cfg.Leverage, err = decimal.NewFromString(c.Leverage)
		if err != nil {
			return Config{}, fmt.Errorf("invalid leverage %q: %w", c.Leverage, err)
		}
	}

	if c.Rounding != nil {
		rounding, err := c.Rounding.toRules()
		if err != nil {
			return Config{}, err
		}
		cfg.Rounding = &rounding
	}

	if cfg.Platform == "csv" {
		if cfg.CandleFile == "" {
			return Config{}, fmt.Errorf("candle_file is required for the csv platform")
		}
		if cfg.Rounding == nil {
			return Config{}, fmt.Errorf("rounding rules are required for the csv platform")
		}
	}

	return cfg, nil
}

func (r RoundingTmp) toRules() (domain.SymbolRoundingRules, error) {
	rules := domain.SymbolRoundingRules{
		BaseVolumePrecision:  r.BaseVolumePrecision,
		QuoteVolumePrecision: r.QuoteVolumePrecision,
		PricePrecision:       r.PricePrecision,
		MinBaseSize:          decimal.Zero,
		MinQuoteSize:         decimal.Zero,
	}

	var err error
	if r.MinBaseSize != "" {
		rules.MinBaseSize, err = decimal.NewFromString(r.MinBaseSize)
		if err != nil {
			return domain.SymbolRoundingRules{}, fmt.Errorf("invalid min_base_size %q: %w", r.MinBaseSize, err)
		}
	}
	if r.MinQuoteSize != "" {
		rules.MinQuoteSize, err = decimal.NewFromString(r.MinQuoteSize)
		if err != nil {
			return domain.SymbolRoundingRules{}, fmt.Errorf("invalid min_quote_size %q: %w", r.MinQuoteSize, err)
		}
	}

	return rules, nil
}

func pairFromString(s string) (domain.Pair, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair: %s", s)
	}
	return domain.Pair{From: parts[0], To: parts[1]}, nil
}
