// Command sweep evicts expired saved ideas from the Redis store and exits.
// Run it from cron when the in-process sweeper (STORE_SWEEP_INTERVAL) is off.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/config"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas/repository"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	prefix  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evict expired saved ideas from Redis",
	Long: `sweep scans every saved-ideas key in Redis and rewrites the ones holding
ideas older than STORE_TTL. Connection settings come from the same
environment variables as the service.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.LogLevel)
		addr := cfg.RedisAddr()
		if addr == "" {
			return fmt.Errorf("REDIS_HOST is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = client.Close() }()

		opts := repository.Options{Capacity: cfg.Store.Capacity, TTL: cfg.Store.TTL}
		n, err := sweep(ctx, repository.NewRedisRepository(client, prefix, opts), time.Now())
		if err != nil {
			return err
		}
		logger.Infof("sweep evicted %d expired ideas", n)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&prefix, "prefix", "ideas:", "key prefix of the saved-ideas store")
	rootCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the sweep")
}

func sweep(ctx context.Context, repo *repository.RedisRepo, now time.Time) (int, error) {
	if err := repo.Ping(ctx); err != nil {
		return 0, fmt.Errorf("connect redis: %w", err)
	}
	n, err := repo.Sweep(ctx, now)
	if err != nil {
		return n, fmt.Errorf("sweep after %d evictions: %w", n, err)
	}
	return n, nil
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
