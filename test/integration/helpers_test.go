//go:build integration

package integration

import (
	"os"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flext/flext-db-oracle/internal/config"
	"github.com/flext/flext-db-oracle/internal/pool"
)

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// oracleConfig builds a connection config from FLEXT_DB_ORACLE_TEST_*
// variables, skipping the test when no target database is configured.
func oracleConfig(t *testing.T) *config.Config {
	t.Helper()
	host := os.Getenv("FLEXT_DB_ORACLE_TEST_HOST")
	if host == "" {
		t.Skip("FLEXT_DB_ORACLE_TEST_HOST not set; skipping live Oracle test")
	}

	port, _ := strconv.Atoi(envOrDefault("FLEXT_DB_ORACLE_TEST_PORT", "1521"))
	cfg := &config.Config{
		Host:        host,
		Port:        port,
		ServiceName: envOrDefault("FLEXT_DB_ORACLE_TEST_SERVICE", "FREEPDB1"),
		Username:    envOrDefault("FLEXT_DB_ORACLE_TEST_USER", "system"),
		Password:    os.Getenv("FLEXT_DB_ORACLE_TEST_PASSWORD"),
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}

func testPool(t *testing.T) *pool.Pool {
	t.Helper()
	p := pool.New(oracleConfig(t), zerolog.Nop())
	t.Cleanup(func() { p.Close() })
	return p
}
