package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/burrowdns/burrow/pkg/client"
	"github.com/burrowdns/burrow/pkg/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running resolver",
	Long: `Query a running Burrow instance over its admin API and print the
instance id, listen address, active sources and component health.
Requires the admin endpoint to be enabled in the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		adminAddr, _ := cmd.Flags().GetString("admin")
		return runStatus(cmd, adminAddr)
	},
}

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List hostnames discovered from containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminAddr, _ := cmd.Flags().GetString("admin")
		return runNames(cmd, adminAddr)
	},
}

func init() {
	adminDefault := config.Default().Admin.Addr
	statusCmd.Flags().String("admin", adminDefault, "Admin API address of the running instance")
	namesCmd.Flags().String("admin", adminDefault, "Admin API address of the running instance")
}

func runStatus(cmd *cobra.Command, adminAddr string) error {
	c := client.NewClient(adminAddr)

	status, err := c.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query %s: %v", adminAddr, err)
	}
	health, err := c.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query %s: %v", adminAddr, err)
	}

	instance := status.Instance
	if instance == "" {
		instance = "unknown"
	}

	fmt.Printf("Burrow instance %s\n", instance)
	fmt.Printf("  Listening: %s\n", status.ListenAddr)
	fmt.Printf("  Uptime:    %s\n", status.Uptime)
	fmt.Printf("  Sources:   %s\n", strings.Join(status.Sources, ", "))

	if status.Discovery != nil {
		fmt.Printf("  Discovery: %d hostnames, snapshot %s old\n",
			status.Discovery.Hostnames, status.Discovery.SnapshotAge)
	} else {
		fmt.Printf("  Discovery: disabled\n")
	}

	fmt.Printf("  Health:    %s\n", health.Status)
	if health.Status != "healthy" {
		names := make([]string, 0, len(health.Components))
		for name := range health.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %s: %s\n", name, health.Components[name])
		}
	}
	return nil
}

func runNames(cmd *cobra.Command, adminAddr string) error {
	c := client.NewClient(adminAddr)

	names, err := c.Names(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query %s: %v", adminAddr, err)
	}

	if len(names) == 0 {
		fmt.Println("No hostnames discovered (is docker discovery enabled?)")
		return nil
	}

	hostnames := make([]string, 0, len(names))
	width := 0
	for name := range names {
		hostnames = append(hostnames, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(hostnames)

	fmt.Printf("%d hostnames discovered:\n", len(hostnames))
	for _, name := range hostnames {
		fmt.Printf("  %-*s  %s\n", width, name, names[name])
	}
	return nil
}
