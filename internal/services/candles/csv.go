package candles

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// csvHeader is the column layout understood by CSVProvider and produced
// by WriteCSV.
var csvHeader = []string{"open_time", "open", "high", "low", "close", "base_volume", "quote_volume"}

// CSVProvider implements Provider over a local CSV file with historical
// candles. Pair and interval arguments are ignored; the file defines the
// series.
type CSVProvider struct {
	path string
}

// NewCSVProvider creates a candle provider reading from the given file.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path}
}

// GetCandles reads candles from the file, oldest first. If limit is positive
// and the file holds more rows, only the most recent limit candles are kept.
func (p *CSVProvider) GetCandles(ctx context.Context, _ domain.Pair, _ string, limit int) ([]domain.Candle, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open candle file %s", p.path)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read candle file header")
	}
	if len(header) != len(csvHeader) {
		return nil, errors.Errorf("unexpected candle file header: %v", header)
	}

	var result []domain.Candle
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read candle file line %d", line)
		}

		candle, err := parseCSVCandle(record)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		result = append(result, candle)
	}

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}

	return result, nil
}

func parseCSVCandle(record []string) (domain.Candle, error) {
	if len(record) != len(csvHeader) {
		return domain.Candle{}, errors.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}

	openMs, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return domain.Candle{}, errors.Wrapf(err, "failed to parse open time %q", record[0])
	}

	values := make([]decimal.Decimal, 6)
	for i, name := range csvHeader[1:] {
		value, err := decimal.NewFromString(record[i+1])
		if err != nil {
			return domain.Candle{}, errors.Wrapf(err, "failed to parse %s %q", name, record[i+1])
		}
		values[i] = value
	}

	return domain.Candle{
		OpenTime:    time.UnixMilli(openMs),
		Open:        values[0],
		High:        values[1],
		Low:         values[2],
		Close:       values[3],
		BaseVolume:  values[4],
		QuoteVolume: values[5],
	}, nil
}

// WriteCSV writes candles to w in the layout CSVProvider reads.
func WriteCSV(w io.Writer, series []domain.Candle) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return errors.Wrap(err, "failed to write candle header")
	}

	for _, c := range series {
		record := []string{
			strconv.FormatInt(c.OpenTime.UnixMilli(), 10),
			c.Open.String(),
			c.High.String(),
			c.Low.String(),
			c.Close.String(),
			c.BaseVolume.String(),
			c.QuoteVolume.String(),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write candle record")
		}
	}

	writer.Flush()
	return writer.Error()
}
