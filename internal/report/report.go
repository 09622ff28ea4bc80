// Package report renders simulation results for the console and exports
// persisted runs to CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/ldca/internal/domain"
	"github.com/vadiminshakov/ldca/internal/simulator"
	"github.com/vadiminshakov/ldca/internal/storage/runs"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	negative  = lipgloss.AdaptiveColor{Light: "#D94F4F", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Faint(true).
			Width(22)

	profitStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(negative).
			Bold(true)
)

// Render formats the outcome of a simulation run for the console.
func Render(pair domain.Pair, params simulator.Parameters, result simulator.Result, market *MarketContext) string {
	var b strings.Builder

	title := fmt.Sprintf("DCA simulation %s %s", pair.String(), params.Side)
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("period", params.Period.String())
	row("notional per period", params.NotionalQuoteSize.String()+" "+pair.To)
	row("leverage", params.Leverage.String())
	row("fee rate", params.FeeRate.String())
	row("trades", strconv.FormatUint(uint64(result.TradeCount), 10))
	row("avg order price", result.AverageOrderPrice.StringFixed(8))
	row("final price", result.FinalPrice.String())
	row("base balance", result.FinalBaseBalance.String()+" "+pair.From)
	row("quote balance", result.FinalQuoteBalance.String()+" "+pair.To)
	row("fees paid", result.FeesPaid.String()+" "+result.FeeSymbol)
	row("invested", result.TotalInvestedAmount.String())
	row("total value", result.TotalValue.StringFixed(8))

	profit := result.ProfitPercent.StringFixed(4) + "%"
	if result.ProfitPercent.IsNegative() {
		row("profit", lossStyle.Render(profit))
	} else {
		row("profit", profitStyle.Render(profit))
	}

	if market != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("market context"))
		b.WriteString(fmt.Sprintf("%s close=%s ema20=%s ema50=%s rsi14=%s trend=%s\n",
			market.Interval,
			market.LastClose.String(),
			market.EMA20.StringFixed(2),
			market.EMA50.StringFixed(2),
			market.RSI14.StringFixed(2),
			market.Trend))
	}

	return b.String()
}

var runsCSVHeader = []string{
	"id", "time", "pair", "side", "interval", "period",
	"notional_quote_size", "fee_rate", "leverage", "candle_count", "trade_count",
	"final_price", "avg_order_price", "base_balance", "quote_balance",
	"fees_paid", "fee_symbol", "invested", "total_value", "profit_percent",
}

// WriteRunsCSV exports persisted run records to w as CSV.
func WriteRunsCSV(w io.Writer, records []runs.RunRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(runsCSVHeader); err != nil {
		return errors.Wrap(err, "failed to write runs header")
	}

	for _, r := range records {
		record := []string{
			r.ID,
			r.Time.UTC().Format("2006-01-02T15:04:05Z"),
			r.Pair,
			r.Side,
			r.Interval,
			r.Period,
			r.NotionalQuoteSize.String(),
			r.FeeRate.String(),
			r.Leverage.String(),
			strconv.Itoa(r.CandleCount),
			strconv.FormatUint(uint64(r.Result.TradeCount), 10),
			r.Result.FinalPrice.String(),
			r.Result.AverageOrderPrice.String(),
			r.Result.FinalBaseBalance.String(),
			r.Result.FinalQuoteBalance.String(),
			r.Result.FeesPaid.String(),
			r.Result.FeeSymbol,
			r.Result.TotalInvestedAmount.String(),
			r.Result.TotalValue.String(),
			r.Result.ProfitPercent.String(),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write run %s", r.ID)
		}
	}

	writer.Flush()
	return writer.Error()
}
