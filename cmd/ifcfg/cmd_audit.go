package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/audit"
	"github.com/newtron-network/ifcfg/pkg/cli"
	"github.com/newtron-network/ifcfg/pkg/intf"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the audit log",
	Long: `View the log of executed (-x) configuration changes.

Every executed operation is recorded with the user, device, interface,
the commands sent and whether the device accepted them.

Examples:
  ifcfg audit list
  ifcfg audit list --device leaf1 --last 24h
  ifcfg -i Port-Channel10 audit list --failures`,
}

var (
	auditDevice    string
	auditOperation string
	auditLast      string
	auditLimit     int
	auditFailures  bool
	auditCommands  bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Device:      auditDevice,
			Interface:   app.interfaceName,
			Limit:       auditLimit,
			FailureOnly: auditFailures,
		}
		if auditOperation != "" {
			op, ok := intf.ParseOperation(auditOperation)
			if !ok {
				return fmt.Errorf("unknown operation %q", auditOperation)
			}
			filter.Operation = string(op)
		}
		if auditLast != "" {
			d, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.Since = time.Now().Add(-d)
		}

		logger, err := audit.NewFileLogger(app.settings.GetAuditLog())
		if err != nil {
			return err
		}
		defer logger.Close()

		events, err := logger.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if app.jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}
		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		t := cli.NewTable("TIMESTAMP", "USER", "DEVICE", "INTERFACE", "OPERATION", "STATUS")
		for _, e := range events {
			status := green("ok")
			if !e.Success {
				status = red("failed")
			}
			t.Row(e.Timestamp.Format("2006-01-02 15:04:05"), e.User, e.Device, cli.OrDash(e.Interface), e.Operation, status)
			if auditCommands && len(e.Commands) > 0 {
				t.Row("", "", "", "", "  "+strings.Join(e.Commands, "; "), "")
			}
		}
		t.Flush()
		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditDevice, "device", "", "Filter by device")
	auditListCmd.Flags().StringVar(&auditOperation, "operation", "", "Filter by operation (e.g. set-lacp-mode)")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Show events from the last duration (e.g. 24h)")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "Show at most this many of the newest events")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Show only failed operations")
	auditListCmd.Flags().BoolVar(&auditCommands, "commands", false, "Show the commands of each event")

	auditCmd.AddCommand(auditListCmd)
}
