package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	Pool         string
	SqrtPriceX96 string
	PoolLiq      string
	Block        uint64
	Positions    string
	Out          string
	PostgresDSN  string
	BatchSize    int
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLMM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("positions", "./data/positions.jsonl")
	v.SetDefault("out", "./data/reports.jsonl")
	v.SetDefault("batch-size", 1000)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       v.GetString("rpc"),
		Pool:         v.GetString("pool"),
		SqrtPriceX96: v.GetString("sqrt-price"),
		PoolLiq:      v.GetString("pool-liquidity"),
		Block:        v.GetUint64("block"),
		Positions:    v.GetString("positions"),
		Out:          v.GetString("out"),
		PostgresDSN:  v.GetString("postgres-dsn"),
		BatchSize:    v.GetInt("batch-size"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
