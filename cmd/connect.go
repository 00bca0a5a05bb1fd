package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/config"
	"github.com/flext/flext-db-oracle/internal/pool"
	"github.com/flext/flext-db-oracle/internal/schema"
	"github.com/flext/flext-db-oracle/internal/wizard"
)

var (
	connectHost     string
	connectPort     int
	connectService  string
	connectSID      string
	connectUser     string
	connectPassword string
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Test a connection to an Oracle database",
	Long: `Connect builds a connection configuration from flags (or an
interactive form when no flags are given), opens a pooled connection,
and reports the round-trip status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if connectHost == "" && urlFlag == "" {
			result, err := wizard.Run(nil)
			if err != nil {
				return err
			}
			fmt.Printf("Connected to %s\n", result.Config.ConnectionString())
			return printStatus(result.Status)
		}

		cfg, err := connectConfig()
		if err != nil {
			return err
		}
		return testAndReport(cfg)
	},
}

var connectEnvCmd = &cobra.Command{
	Use:   "connect-env",
	Short: "Test a connection using FLEXT_DB_ORACLE_* environment variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return testAndReport(cfg)
	},
}

func connectConfig() (*config.Config, error) {
	if urlFlag != "" {
		cfg, err := config.ParseURL(urlFlag)
		if err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	cfg := &config.Config{
		Host:        connectHost,
		Port:        connectPort,
		ServiceName: connectService,
		SID:         connectSID,
		Username:    connectUser,
		Password:    connectPassword,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func testAndReport(cfg *config.Config) error {
	log := newLogger()
	p := pool.New(cfg, log)
	defer p.Close()

	fmt.Printf("Connecting to %s...\n", cfg.ConnectionString())
	status := p.TestConnection(context.Background())

	if err := printStatus(status); err != nil {
		return err
	}
	if !status.Connected {
		return fmt.Errorf("connection failed: %s", status.ErrorMessage)
	}
	return nil
}

func printStatus(status schema.ConnectionStatus) error {
	return render(
		[]string{"CONNECTED", "HOST", "PORT", "DATABASE", "USERNAME", "CHECKED"},
		[][]any{{
			status.Connected, status.Host, status.Port,
			status.Database, status.Username, status.LastCheck.Format("2006-01-02 15:04:05"),
		}},
	)
}

func init() {
	connectCmd.Flags().StringVar(&connectHost, "host", "", "database host")
	connectCmd.Flags().IntVar(&connectPort, "port", config.DefaultPort, "listener port")
	connectCmd.Flags().StringVar(&connectService, "service", "", "service name")
	connectCmd.Flags().StringVar(&connectSID, "sid", "", "SID (alternative to --service)")
	connectCmd.Flags().StringVar(&connectUser, "user", "", "username")
	connectCmd.Flags().StringVar(&connectPassword, "password", "", "password")
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(connectEnvCmd)
}
