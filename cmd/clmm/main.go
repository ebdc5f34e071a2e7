package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "clmm",
		Short:        "Concentrated-liquidity math toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between ticks, sqrt-prices and prices",
		RunE:  runConvert,
	}

	convertCmd.Flags().Int32("tick", 0, "tick index to convert")
	convertCmd.Flags().String("sqrt-price", "", "Q96 sqrt-price to convert")
	convertCmd.Flags().String("price", "", "Q96 linear price to convert")

	root.AddCommand(convertCmd)

	valueCmd := &cobra.Command{
		Use:   "value",
		Short: "Value a single position against a pool price",
		RunE:  runValue,
	}

	valueCmd.Flags().String("sqrt-price", "", "pool Q96 sqrt-price")
	valueCmd.Flags().String("pool-liquidity", "", "total pool liquidity")
	valueCmd.Flags().String("lower", "", "position lower bound (Q96 sqrt-price)")
	valueCmd.Flags().String("upper", "", "position upper bound (Q96 sqrt-price)")
	valueCmd.Flags().String("liquidity", "", "position liquidity")
	valueCmd.Flags().String("entry-price", "", "entry price (Q96 linear price)")

	root.AddCommand(valueCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Value a positions file against pool state",
		RunE:  runReport,
	}

	reportCmd.Flags().String("rpc", "", "RPC URL for live pool state")
	reportCmd.Flags().String("pool", "", "pool contract address")
	reportCmd.Flags().Uint64("block", 0, "block height for pool state, 0 means latest")
	reportCmd.Flags().String("sqrt-price", "", "pool Q96 sqrt-price (instead of live state)")
	reportCmd.Flags().String("pool-liquidity", "", "total pool liquidity (instead of live state)")
	reportCmd.Flags().String("positions", "./data/positions.jsonl", "input positions JSONL")
	reportCmd.Flags().String("out", "./data/reports.jsonl", "output reports JSONL")
	reportCmd.Flags().String("postgres-dsn", "", "Postgres DSN (instead of JSONL output)")
	reportCmd.Flags().Int("batch-size", 1000, "batch size for report writes")
	reportCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(reportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
