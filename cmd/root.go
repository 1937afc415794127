package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfoodshare/foodgate/internal/config"
	"github.com/openfoodshare/foodgate/internal/logger"
	"github.com/openfoodshare/foodgate/internal/server"
)

const version = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:   "foodgate",
	Short: "Query-and-mutation gateway for surplus-food inventory",
	Long: `foodgate mediates access between interactive clients and the
food-redistribution store: TTL-cached reads, the fixed catalog of
analytical reports, and transactional writes, exposed as MCP tools.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to JSON config file (defaults to the standard search locations)")
	rootCmd.PersistentFlags().BoolP("read-only", "r", false, "Disable mutation tools (reads and reports only)")
	rootCmd.PersistentFlags().IntP("cache-ttl", "t", 0, "Read cache TTL in seconds (overrides config)")

	stdioCmd := &cobra.Command{
		Use:   "stdio",
		Short: "Run over stdio transport (for local MCP clients)",
		RunE:  runStdio,
	}
	rootCmd.AddCommand(stdioCmd)
}

func runStdio(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	readOnly, _ := cmd.Flags().GetBool("read-only")
	ttl, _ := cmd.Flags().GetInt("cache-ttl")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if ttl > 0 {
		cfg.CacheTTLSeconds = ttl
	}

	if err := logger.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Shutdown()

	return server.RunStdio(server.Config{
		Version:   version,
		ReadOnly:  readOnly,
		AppConfig: cfg,
	})
}
