// Package valuation turns stored position records into valuation reports
// against a single pool-state snapshot. It is the streaming consumer of the
// pricing packages: records come in as JSONL, reports go out through a sink.
package valuation

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"clmmCore/internal/model"
	"clmmCore/internal/position"
	"clmmCore/internal/tickmath"
)

// Config controls valuation behavior.
type Config struct {
	BatchSize int
}

// ReportSink receives batches of finished reports.
type ReportSink interface {
	PutReports(ctx context.Context, reports []model.ValuationReport) error
}

// Valuer evaluates position records against one pool state.
type Valuer struct {
	cfg    Config
	sink   ReportSink
	logger *zap.Logger
}

func NewValuer(cfg Config, sink ReportSink, logger *zap.Logger) *Valuer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Valuer{
		cfg:    cfg,
		sink:   sink,
		logger: logger,
	}
}

// Run evaluates every position in a JSONL file and flushes reports to the
// sink in batches. Malformed lines are counted and skipped, not fatal.
func (v *Valuer) Run(ctx context.Context, inputPath string, pool model.PoolState) error {
	if v.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if v.cfg.BatchSize <= 0 {
		v.cfg.BatchSize = 1000
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	evaluatedAt := time.Now().UTC().Format(time.RFC3339)
	batch := make([]model.ValuationReport, 0, v.cfg.BatchSize)
	var total, valued, failed int

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var record model.Position
		if err := json.Unmarshal(line, &record); err != nil {
			failed++
			v.logger.Warn("decode position", zap.Error(err))
			continue
		}

		report, err := Evaluate(record, pool, evaluatedAt)
		if err != nil {
			failed++
			v.logger.Warn("evaluate position", zap.Error(err), zap.String("position", record.ID))
			continue
		}
		batch = append(batch, report)
		valued++

		if len(batch) >= v.cfg.BatchSize {
			if err := v.sink.PutReports(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if len(batch) > 0 {
		if err := v.sink.PutReports(ctx, batch); err != nil {
			return err
		}
	}

	v.logger.Info("valuation complete",
		zap.Int("total", total),
		zap.Int("valued", valued),
		zap.Int("failed", failed),
	)

	return nil
}

// Evaluate computes one report for one position against the pool state. The
// pool's liquidity may be empty, in which case the share is reported as 0.
func Evaluate(record model.Position, pool model.PoolState, evaluatedAt string) (model.ValuationReport, error) {
	sqrtPrice, err := parseUint(pool.SqrtPriceX96, "pool sqrt price")
	if err != nil {
		return model.ValuationReport{}, err
	}
	lower, err := parseUint(record.PriceLowerX96, "lower bound")
	if err != nil {
		return model.ValuationReport{}, err
	}
	upper, err := parseUint(record.PriceUpperX96, "upper bound")
	if err != nil {
		return model.ValuationReport{}, err
	}
	liq, err := parseUint(record.Liquidity, "liquidity")
	if err != nil {
		return model.ValuationReport{}, err
	}

	amount0, amount1 := position.TokenAmounts(sqrtPrice, lower, upper, liq)

	share := new(uint256.Int)
	if pool.Liquidity != "" {
		poolLiq, err := parseUint(pool.Liquidity, "pool liquidity")
		if err != nil {
			return model.ValuationReport{}, err
		}
		share = position.Share(liq, poolLiq)
	}

	report := model.ValuationReport{
		PositionID:   record.ID,
		Owner:        record.Owner,
		PoolID:       record.PoolID,
		Amount0:      amount0.Dec(),
		Amount1:      amount1.Dec(),
		InRange:      position.InRange(sqrtPrice, lower, upper),
		ShareBps:     share.Dec(),
		SqrtPriceX96: sqrtPrice.Dec(),
		Tick:         tickmath.TickAtSqrtRatio(sqrtPrice),
		EvaluatedAt:  evaluatedAt,
	}

	if record.EntryPriceX96 != "" {
		entry, err := parseUint(record.EntryPriceX96, "entry price")
		if err != nil {
			return model.ValuationReport{}, err
		}
		current := tickmath.PriceFromSqrtPrice(sqrtPrice)
		report.ImpermanentLossX96 = position.ImpermanentLoss(current, entry).String()
	}

	return report, nil
}

func parseUint(value, field string) (*uint256.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("%s is empty", field)
	}
	parsed, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return parsed, nil
}
