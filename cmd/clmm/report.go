package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clmmCore/internal/chain"
	"clmmCore/internal/config"
	"clmmCore/internal/dex"
	"clmmCore/internal/model"
	"clmmCore/internal/storage"
	"clmmCore/internal/storage/postgres"
	"clmmCore/internal/valuation"
)

func runReport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Positions == "" {
		return fmt.Errorf("positions path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := resolvePoolState(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var sink valuation.ReportSink
	if cfg.PostgresDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		if cfg.Out == "" {
			return fmt.Errorf("out path is required")
		}
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	valuer := valuation.NewValuer(valuation.Config{
		BatchSize: cfg.BatchSize,
	}, sink, logger)

	logger.Info("report start",
		zap.String("positions", cfg.Positions),
		zap.String("pool", pool.PoolAddress),
		zap.String("sqrt_price_x96", pool.SqrtPriceX96),
		zap.Int32("tick", pool.Tick),
		zap.Uint64("block", pool.BlockNumber),
		zap.Int("batch_size", cfg.BatchSize),
	)

	return valuer.Run(ctx, cfg.Positions, pool)
}

// resolvePoolState prefers flag-provided state; otherwise it reads slot0 and
// liquidity from the pool contract over RPC.
func resolvePoolState(ctx context.Context, cfg config.Config, logger *zap.Logger) (model.PoolState, error) {
	if cfg.SqrtPriceX96 != "" {
		return model.PoolState{
			SqrtPriceX96: cfg.SqrtPriceX96,
			Liquidity:    cfg.PoolLiq,
			BlockNumber:  cfg.Block,
		}, nil
	}

	if cfg.RPCURL == "" || cfg.Pool == "" {
		return model.PoolState{}, fmt.Errorf("either sqrt-price or rpc and pool are required")
	}
	if !common.IsHexAddress(cfg.Pool) {
		return model.PoolState{}, fmt.Errorf("invalid pool address: %s", cfg.Pool)
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return model.PoolState{}, fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	block := cfg.Block
	if block == 0 {
		latest, err := chainClient.LatestBlockNumber(ctx)
		if err != nil {
			return model.PoolState{}, fmt.Errorf("latest block: %w", err)
		}
		block = latest
	}

	state, err := dex.FetchPoolState(ctx, chainClient, common.HexToAddress(cfg.Pool), block, logger)
	if err != nil {
		return model.PoolState{}, fmt.Errorf("fetch pool state: %w", err)
	}
	return state, nil
}
