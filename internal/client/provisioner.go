package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openfoodshare/foodgate/internal/config"
	"github.com/openfoodshare/foodgate/internal/logger"
)

// Source hands out a store handle per operation. Acquire returns the handle
// together with a release func the caller must run on every exit path,
// success or failure. A pooled implementation can replace Provisioner
// without touching call sites.
type Source interface {
	Acquire(ctx context.Context) (*sql.DB, func(), error)
}

// Provisioner opens a fresh connection for every operation from the
// configured values. No reuse: release closes the handle outright.
type Provisioner struct {
	driver string
	dsn    string
}

func NewProvisioner(cfg config.DatabaseConfig) *Provisioner {
	return &Provisioner{driver: cfg.Driver, dsn: cfg.DSN()}
}

func (p *Provisioner) Acquire(ctx context.Context) (*sql.DB, func(), error) {
	db, err := sql.Open(p.driver, p.dsn)
	if err != nil {
		logger.LogConnectionEvent("open", p.driver, err)
		return nil, nil, fmt.Errorf("open %s: %w", p.driver, err)
	}

	// One operation, one handle.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.LogConnectionEvent("ping", p.driver, err)
		return nil, nil, fmt.Errorf("ping %s: %w", p.driver, err)
	}

	logger.LogConnectionEvent("acquire", p.driver, nil)
	return db, func() { db.Close() }, nil
}
