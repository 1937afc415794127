package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/client"
	"github.com/openfoodshare/foodgate/internal/config"
	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/internal/logger"
	"github.com/openfoodshare/foodgate/internal/state"
	"github.com/openfoodshare/foodgate/internal/tools"
)

type Config struct {
	Version   string
	ReadOnly  bool
	AppConfig *config.Config
}

// New assembles the gateway around the configured store and wraps it in an
// MCP server.
func New(cfg Config) *mcp.Server {
	provisioner := client.NewProvisioner(cfg.AppConfig.Database)
	gw := gateway.New(provisioner, cfg.AppConfig.CacheTTL())

	// Seed the default session so tool handlers find the gateway.
	state.GetOrCreateSession("default", gw)

	impl := &mcp.Implementation{Name: "foodgate", Version: cfg.Version}
	s := mcp.NewServer(impl, nil)
	tools.RegisterTools(s, gw, cfg.ReadOnly)
	return s
}

// RunStdio serves the gateway over stdio until interrupted.
func RunStdio(cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := New(cfg)
	logger.Info("foodgate server running",
		"read_only", cfg.ReadOnly,
		"cache_ttl", cfg.AppConfig.CacheTTL().String(),
		"driver", cfg.AppConfig.Database.Driver,
	)

	return s.Run(ctx, &mcp.StdioTransport{})
}
