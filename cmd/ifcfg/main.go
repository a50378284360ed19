// ifcfg - switch interface configuration tool
//
// Reads and edits the interfaces of an EOS switch through its running
// configuration: Ethernet ports, Port-Channels and the VXLAN tunnel
// interface, plus any other interface through the generic handler.
// Write commands preview changes by default; -x executes them.
//
// Context flags select the object; commands are methods on that object:
//
//	ifcfg -d <device> -i <interface> <verb> [args] [-x]
//	       └──────────┬───────────┘   └──┬──┘
//	          Object Selection      Method Call
//
// Examples:
//
//	ifcfg -d leaf1 list                                   # All interfaces
//	ifcfg -d leaf1 -i et1 show                            # One interface
//	ifcfg -d leaf1 -i Ethernet1 set description uplink -x
//	ifcfg -d leaf1 -i po10 set-members Ethernet3-4,7      # Preview a reconcile
//	ifcfg -d leaf1 map-vni 20 10020 -x                    # Vxlan1 by default
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/audit"
	"github.com/newtron-network/ifcfg/pkg/settings"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// app holds global flags and the state PersistentPreRunE sets up.
var app struct {
	deviceName    string // -d
	interfaceName string // -i
	inventoryPath string
	executeMode   bool
	jsonOutput    bool
	verbose       bool
	logJSON       bool
	logFile       string

	settings *settings.Settings
	audit    audit.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if app.audit != nil {
		app.audit.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "ifcfg",
	Short:             "Switch interface configuration tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `ifcfg reads and edits switch interfaces through the running configuration.

Context flags select the object; commands are methods on that object.
Write commands preview changes by default; use -x to execute.

  ifcfg -d <device> -i <interface> <verb> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if app.verbose {
			util.SetLogLevel("debug")
		}
		if app.logJSON {
			util.SetJSONFormat()
		}
		if app.logFile != "" {
			f, err := os.OpenFile(app.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			util.SetLogOutput(f)
		}

		s, err := settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			s = &settings.Settings{}
		}
		app.settings = s

		if app.deviceName == "" {
			app.deviceName = s.DefaultDevice
		}
		if app.inventoryPath == "" {
			app.inventoryPath = s.GetInventory()
		}
		if app.interfaceName != "" {
			app.interfaceName = util.NormalizeInterfaceName(app.interfaceName)
		}
		util.Debugf("device=%q inventory=%s execute=%v", app.deviceName, app.inventoryPath, app.executeMode)

		if isMetaCommand(cmd) || !app.executeMode {
			return nil
		}
		logger, err := audit.NewFileLogger(s.GetAuditLog(), audit.WithRotation(10*1024*1024, 10))
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
			return nil
		}
		app.audit = logger
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.deviceName, "device", "d", "", "Device name (object selector)")
	rootCmd.PersistentFlags().StringVarP(&app.interfaceName, "interface", "i", "", "Interface name (object selector)")
	rootCmd.PersistentFlags().StringVar(&app.inventoryPath, "inventory", "", "Inventory file (default from settings)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&app.logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&app.logFile, "log-file", "", "Append logs to this file instead of stderr")

	for _, cmd := range writeCommands() {
		cmd.Flags().BoolVarP(&app.executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
	}
	for _, cmd := range []*cobra.Command{listCmd, showCmd, supportsCmd, devicesCmd, auditListCmd} {
		cmd.Flags().BoolVar(&app.jsonOutput, "json", false, "JSON output")
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Object Operations:"},
		&cobra.Group{ID: "mutate", Title: "Interface Management:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)
	for _, cmd := range []*cobra.Command{listCmd, showCmd, supportsCmd} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range writeCommands() {
		cmd.GroupID = "mutate"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{devicesCmd, settingsCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

func writeCommands() []*cobra.Command {
	return []*cobra.Command{
		createCmd, deleteCmd, defaultCmd, setCmd, unsetCmd,
		addMemberCmd, removeMemberCmd, setMembersCmd,
		addVtepCmd, removeVtepCmd, mapVniCmd, unmapVniCmd,
	}
}

// isMetaCommand reports whether cmd (or an ancestor) works without a device.
func isMetaCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings", "audit", "devices":
			return true
		}
	}
	return false
}
