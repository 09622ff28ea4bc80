// Package runs persists completed simulation runs in a write-ahead log so
// past backtests survive restarts and can be compared later.
package runs

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/ldca/internal/simulator"
)

const (
	DefaultDir   = "./wal/runs"
	segmentLimit = 100
	maxSegments  = 10

	runKeyPrefix = "ldca_run_"
)

// RunRecord is one persisted simulation run: the inputs that shaped it and
// the result it produced.
type RunRecord struct {
	ID                string           `json:"id"`
	Pair              string           `json:"pair"`
	Side              string           `json:"side"`
	Interval          string           `json:"interval"`
	Period            string           `json:"period"`
	NotionalQuoteSize decimal.Decimal  `json:"notional_quote_size"`
	FeeRate           decimal.Decimal  `json:"fee_rate"`
	Leverage          decimal.Decimal  `json:"leverage"`
	CandleCount       int              `json:"candle_count"`
	Result            simulator.Result `json:"result"`
	Time              time.Time        `json:"time"`
}

// WALStore persists run records in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed run store in dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "run_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init run WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save writes the run record to the WAL. A missing ID or timestamp is
// filled in.
func (s *WALStore) Save(record RunRecord) (RunRecord, error) {
	if s == nil || s.wal == nil {
		return RunRecord{}, errors.New("run store is not initialized")
	}
	if record.Pair == "" {
		return RunRecord{}, errors.New("run record pair is required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Time.IsZero() {
		record.Time = time.Now().UTC()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return RunRecord{}, errors.Wrap(err, "marshal run record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	if err := s.wal.Write(nextIndex, runKeyPrefix+record.ID, payload); err != nil {
		return RunRecord{}, errors.Wrap(err, "write run record")
	}

	return record, nil
}

// All returns every persisted run record in write order.
func (s *WALStore) All() ([]RunRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("run store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []RunRecord
	for msg := range s.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, runKeyPrefix) {
			continue
		}

		var record RunRecord
		if err := json.Unmarshal(msg.Value, &record); err != nil {
			return nil, errors.Wrapf(err, "decode run record %s", msg.Key)
		}
		records = append(records, record)
	}

	return records, nil
}

// Close releases the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return nil
	}
	return s.wal.Close()
}
