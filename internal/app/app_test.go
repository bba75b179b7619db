package app

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/godilite/jii-dashboard/internal/config"
)

func TestNewApp_InvalidDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle", DBPath: "x"}

	a, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Nil(t, a)
	assert.ErrorContains(t, err, "database init failed")
}

func TestNewApp_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DBDriver:    "sqlite3",
		DBPath:      filepath.Join(dir, "events.db"),
		CatalogPath: filepath.Join(dir, "missing.yaml"),
		GRPCPort:    50051,
	}

	a, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Nil(t, a)
	assert.ErrorContains(t, err, "load catalog")
}

func TestNewApp_InvalidGRPCPort(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite3",
		DBPath:   filepath.Join(t.TempDir(), "events.db"),
		GRPCPort: 0,
	}

	a, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Nil(t, a)
	assert.ErrorContains(t, err, "failed to create gRPC server")
}
