package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clmmCore/internal/model"
)

// Store provides Postgres persistence for valuation reports.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutReports inserts or updates the latest report per position.
func (s *Store) PutReports(ctx context.Context, reports []model.ValuationReport) error {
	if len(reports) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range reports {
		var il *string
		if r.ImpermanentLossX96 != "" {
			val := r.ImpermanentLossX96
			il = &val
		}
		batch.Queue(`
			INSERT INTO position_valuations (
				position_id, owner, pool_id, amount0, amount1, in_range,
				share_bps, impermanent_loss_x96, sqrt_price_x96, tick, evaluated_at,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (position_id)
			DO UPDATE SET
				owner = EXCLUDED.owner,
				pool_id = EXCLUDED.pool_id,
				amount0 = EXCLUDED.amount0,
				amount1 = EXCLUDED.amount1,
				in_range = EXCLUDED.in_range,
				share_bps = EXCLUDED.share_bps,
				impermanent_loss_x96 = EXCLUDED.impermanent_loss_x96,
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				tick = EXCLUDED.tick,
				evaluated_at = EXCLUDED.evaluated_at,
				updated_at = now()
		`,
			r.PositionID,
			r.Owner,
			r.PoolID,
			r.Amount0,
			r.Amount1,
			r.InRange,
			r.ShareBps,
			il,
			r.SqrtPriceX96,
			r.Tick,
			r.EvaluatedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range reports {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
