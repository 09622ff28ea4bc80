package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/config"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the
// resulting simulation config to config.gen.yaml.
func RunTUI() error {
	var (
		platform   string
		pair       string
		interval   string
		limitStr   string
		periodStr  string
		sizeStr    string
		side       string
		feeStr     string
		levStr     string
		candleFile string
		confirm    bool
	)

	// defaults
	limitStr = "500"
	periodStr = "5m"
	sizeStr = "100"
	feeStr = "0.001"
	levStr = "1"

	basePrecStr := "5"
	quotePrecStr := "8"
	pricePrecStr := "2"
	minBaseStr := ""
	minQuoteStr := ""

	// step 1: welcome
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's set up your historical DCA simulation.\n"))

	// candle source
	fmt.Println(stepStyle.Render("STEP 1: CANDLE SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should candles come from?").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
					huh.NewOption("CSV file", "csv"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// pair
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Must contain underscore (e.g. BTC_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !containsUnderscore(s) {
						return fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. BTC_USDT)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// candle window
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: CANDLES"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Candle Interval").
				Description("Exchange kline interval (e.g. 1m, 1h, 1d)").
				Value(&interval).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("interval cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Candle Limit").
				Description("How many candles to replay (e.g. 500)").
				Value(&limitStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive integer")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// simulation parameters
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: SIMULATION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Order Period").
				Description("Distance between simulated orders (e.g. 30s, 5m, 1h)").
				Value(&periodStr).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),
			huh.NewInput().
				Title("Quote Size per Order").
				Description("Quote amount committed each period (e.g. 100)").
				Value(&sizeStr).
				Validate(validatePositiveDecimal),
			huh.NewSelect[string]().
				Title("Trade Side").
				Options(
					huh.NewOption("Buy (accumulate base)", "buy"),
					huh.NewOption("Sell (accumulate quote)", "sell"),
				).
				Value(&side),
			huh.NewInput().
				Title("Fee Rate").
				Description("Fraction of each fill, 0 <= fee < 1 (e.g. 0.001)").
				Value(&feeStr).
				Validate(validateFeeRate),
			huh.NewInput().
				Title("Leverage").
				Description("Notional multiplier (e.g. 1, 3, 10)").
				Value(&levStr).
				Validate(validatePositiveDecimal),
		),
	).Run()
	if err != nil {
		return err
	}

	// csv sources carry no exchange metadata, ask for rounding rules
	if platform == "csv" {
		fmt.Print("\033[H\033[2J")
		fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
		fmt.Println(stepStyle.Render("STEP 5: CSV SETTINGS"))
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Candle File").
					Description("Path to the OHLCV csv file").
					Value(&candleFile).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("file path cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Base Volume Precision").
					Description("Decimal places for order quantities").
					Value(&basePrecStr).
					Validate(validatePrecision),
				huh.NewInput().
					Title("Quote Volume Precision").
					Value(&quotePrecStr).
					Validate(validatePrecision),
				huh.NewInput().
					Title("Price Precision").
					Value(&pricePrecStr).
					Validate(validatePrecision),
				huh.NewInput().
					Title("Min Base Size").
					Description("Smallest tradable base quantity, empty for none").
					Value(&minBaseStr),
				huh.NewInput().
					Title("Min Quote Size").
					Description("Smallest tradable quote amount, empty for none").
					Value(&minQuoteStr),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("LDCA SIMULATOR WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Source: %s\nPair: %s\nInterval: %s (%s candles)\nPeriod: %s\nQuote size: %s\nSide: %s\nFee rate: %s\nLeverage: %s\n",
		platform, pair, interval, limitStr, periodStr, sizeStr, side, feeStr, levStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and run").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	period, _ := time.ParseDuration(periodStr)
	limit, _ := strconv.Atoi(limitStr)

	cfgTmp := config.ConfigTmp{
		Platform:          platform,
		Pair:              pair,
		Interval:          interval,
		CandleLimit:       limit,
		Period:            period,
		NotionalQuoteSize: sizeStr,
		Side:              side,
		FeeRate:           feeStr,
		Leverage:          levStr,
	}

	if platform == "csv" {
		basePrec, _ := strconv.ParseInt(basePrecStr, 10, 32)
		quotePrec, _ := strconv.ParseInt(quotePrecStr, 10, 32)
		pricePrec, _ := strconv.ParseInt(pricePrecStr, 10, 32)

		cfgTmp.CandleFile = candleFile
		cfgTmp.Rounding = &config.RoundingTmp{
			BaseVolumePrecision:  int32(basePrec),
			QuoteVolumePrecision: int32(quotePrec),
			PricePrecision:       int32(pricePrec),
			MinBaseSize:          minBaseStr,
			MinQuoteSize:         minQuoteStr,
		}
	}

	configs := []config.ConfigTmp{cfgTmp}

	data, err := yaml.Marshal(configs)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting simulation...", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validatePositiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateFeeRate(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("must be at least 0 and below 1")
	}
	return nil
}

func validatePrecision(s string) error {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}
