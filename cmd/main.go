// Command ldca replays a leveraged DCA order schedule over historical
// OHLCV candles and reports the resulting position. Candles come from
// an exchange (Binance, Bybit, Hyperliquid) or a local CSV file.
//
// Usage:
//
//	ldca --config config.yaml
//	ldca --setup (interactive wizard, writes config.gen.yaml)
//	ldca (uses CLI arguments)
//
// Environment variables:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET (optional, klines are public)
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET (optional, klines are public)
//	For Hyperliquid: HYPERLIQUID_PRIVATE_KEY (required)
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/ldca/config"
	"github.com/vadiminshakov/ldca/internal/clients"
	"github.com/vadiminshakov/ldca/internal/domain"
	"github.com/vadiminshakov/ldca/internal/report"
	"github.com/vadiminshakov/ldca/internal/services/candles"
	"github.com/vadiminshakov/ldca/internal/services/exchangeinfo"
	"github.com/vadiminshakov/ldca/internal/setup"
	"github.com/vadiminshakov/ldca/internal/simulator"
	"github.com/vadiminshakov/ldca/internal/storage/runs"
	"github.com/vadiminshakov/ldca/pkg/retrier"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--setup" || os.Args[1] == "-setup") {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		os.Args = []string{os.Args[0], "--config", "config.gen.yaml"}
	}

	configs, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()
	for _, cfg := range configs {
		if err := simulate(ctx, logger, cfg); err != nil {
			logger.Fatal("simulation failed",
				zap.String("pair", cfg.Pair.String()),
				zap.Error(err))
		}
	}
}

func simulate(ctx context.Context, logger *zap.Logger, cfg config.Config) error {
	provider, rulesProvider, err := buildProviders(cfg)
	if err != nil {
		return err
	}

	r := retrier.New(retrier.WithMaxRetries(3))

	series, err := retrier.DoWithData(r, ctx, func(ctx context.Context) ([]domain.Candle, error) {
		return provider.GetCandles(ctx, cfg.Pair, cfg.Interval, cfg.CandleLimit)
	})
	if err != nil {
		return errors.Wrap(err, "failed to load candles")
	}

	logger.Info("candles loaded",
		zap.String("pair", cfg.Pair.String()),
		zap.String("interval", cfg.Interval),
		zap.Int("count", len(series)))

	rules, err := retrier.DoWithData(r, ctx, func(ctx context.Context) (domain.SymbolRoundingRules, error) {
		return rulesProvider.GetRules(ctx, cfg.Pair)
	})
	if err != nil {
		return errors.Wrap(err, "failed to load symbol rounding rules")
	}

	params := simulator.Parameters{
		Period:            cfg.Period,
		NotionalQuoteSize: cfg.NotionalQuoteSize,
		Side:              cfg.Side,
		FeeRate:           cfg.FeeRate,
		Leverage:          cfg.Leverage,
	}

	result, err := simulator.Run(cfg.Pair, series, rules, params)
	if err != nil {
		return err
	}

	runsDir := cfg.RunsDir
	if runsDir == "" {
		runsDir = "runs"
	}

	store, err := runs.NewWALStore(runsDir)
	if err != nil {
		return errors.Wrap(err, "failed to open run journal")
	}
	defer store.Close()

	record, err := store.Save(runs.RunRecord{
		Pair:              cfg.Pair.String(),
		Side:              cfg.Side.String(),
		Interval:          cfg.Interval,
		Period:            cfg.Period.String(),
		NotionalQuoteSize: cfg.NotionalQuoteSize,
		FeeRate:           cfg.FeeRate,
		Leverage:          cfg.Leverage,
		CandleCount:       len(series),
		Result:            result,
	})
	if err != nil {
		return errors.Wrap(err, "failed to record run")
	}

	logger.Info("run recorded",
		zap.String("id", record.ID),
		zap.String("runs_dir", runsDir))

	market, err := report.BuildMarketContext(cfg.Interval, series)
	if err != nil {
		logger.Debug("market context unavailable", zap.Error(err))
		market = nil
	}

	fmt.Println(report.Render(cfg.Pair, params, result, market))
	return nil
}

func buildProviders(cfg config.Config) (candles.Provider, exchangeinfo.RulesProvider, error) {
	var static exchangeinfo.RulesProvider
	if cfg.Rounding != nil {
		static = exchangeinfo.NewStaticRulesProvider(*cfg.Rounding)
	}

	switch cfg.Platform {
	case "binance":
		client := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		if static != nil {
			return candles.NewBinanceProvider(client), static, nil
		}
		return candles.NewBinanceProvider(client), exchangeinfo.NewBinanceRulesProvider(client), nil
	case "bybit":
		client := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		if static != nil {
			return candles.NewBybitProvider(client), static, nil
		}
		return candles.NewBybitProvider(client), exchangeinfo.NewBybitRulesProvider(client), nil
	case "hyperliquid":
		key := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
		if key == "" {
			return nil, nil, errors.New("HYPERLIQUID_PRIVATE_KEY environment variable must be set")
		}
		client, err := clients.NewHyperliquidClient(key, "")
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to build hyperliquid client")
		}
		if static == nil {
			return nil, nil, errors.New("rounding rules must be configured for the hyperliquid platform")
		}
		return candles.NewHyperliquidProvider(client.Info()), static, nil
	case "csv":
		if cfg.CandleFile == "" {
			return nil, nil, errors.New("candle file must be configured for the csv platform")
		}
		if static == nil {
			return nil, nil, errors.New("rounding rules must be configured for the csv platform")
		}
		return candles.NewCSVProvider(cfg.CandleFile), static, nil
	default:
		return nil, nil, errors.Errorf("unsupported platform %q", cfg.Platform)
	}
}
