package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burrowdns/burrow/pkg/config"
	"github.com/burrowdns/burrow/pkg/hosts"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load the configuration file, apply defaults and print the effective
settings. Exits non-zero when the file is missing or invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return runValidate(configPath)
	},
}

func init() {
	validateCmd.Flags().String("config", "burrow.yaml", "Path to the configuration file")
}

func runValidate(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The local table is built at server start; surface its errors here too
	table, err := hosts.NewTable(cfg.Local.Entries, cfg.Local.File)
	if err != nil {
		return fmt.Errorf("invalid local table: %w", err)
	}

	fmt.Printf("✓ Configuration is valid: %s\n", configPath)
	fmt.Println()
	fmt.Printf("  Listen:        %s\n", cfg.ListenAddr())

	if cfg.Docker.Enable {
		fmt.Printf("  Discovery:     %s (refresh every %s)\n", cfg.Docker.Endpoint, cfg.Docker.RefreshInterval())
	} else {
		fmt.Printf("  Discovery:     disabled\n")
	}

	fmt.Printf("  Local entries: %d\n", table.Len())

	if cfg.DNS.Primary != "" {
		fmt.Printf("  Primary DNS:   %s\n", cfg.DNS.Primary)
	} else {
		fmt.Printf("  Primary DNS:   none\n")
	}
	if cfg.DNS.Secondary != "" {
		fmt.Printf("  Secondary DNS: %s\n", cfg.DNS.Secondary)
	}
	if cfg.DNS.Primary != "" || cfg.DNS.Secondary != "" {
		fmt.Printf("  Upstream timeout: %s\n", cfg.DNS.Timeout())
	}

	if cfg.Watch.Enabled() {
		fmt.Printf("  Watch:         enabled (settle %s)\n", cfg.Watch.Interval())
	} else {
		fmt.Printf("  Watch:         disabled\n")
	}

	if cfg.Admin.Enable {
		fmt.Printf("  Admin:         %s\n", cfg.Admin.Addr)
	} else {
		fmt.Printf("  Admin:         disabled\n")
	}

	fmt.Printf("  Log:           %s\n", cfg.Log.Level)
	return nil
}
