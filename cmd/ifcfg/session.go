package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newtron-network/ifcfg/pkg/audit"
	"github.com/newtron-network/ifcfg/pkg/cli"
	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/intf"
	"github.com/newtron-network/ifcfg/pkg/inventory"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// openDevice connects to the -d device through the inventory.
func openDevice(ctx context.Context) (device.Node, error) {
	if app.deviceName == "" {
		return nil, fmt.Errorf("device required: use -d <device> flag (or: ifcfg settings set default_device <name>)")
	}
	inv, err := inventory.Load(app.inventoryPath)
	if err != nil {
		return nil, err
	}
	return inv.Open(ctx, app.deviceName, promptPassword)
}

func promptPassword(dev *inventory.Device) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password in inventory and stdin is not a terminal")
	}
	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", dev.Username, dev.Host)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(b), err
}

// requireInterface returns the -i interface, or args[offset] when given.
func requireInterface(args []string, offset int) (string, error) {
	switch {
	case len(args) > offset:
		return util.NormalizeInterfaceName(args[offset]), nil
	case app.interfaceName != "":
		return app.interfaceName, nil
	}
	return "", fmt.Errorf("interface required: use -i <interface> flag")
}

// vxlanInterface returns the -i interface, or "" so the facade picks the
// default tunnel interface.
func vxlanInterface() string {
	return app.interfaceName
}

// withInterfaces runs a read-only fn against the -d device.
func withInterfaces(cmd *cobra.Command, fn func(ctx context.Context, f *intf.Interfaces) error) error {
	ctx := cmd.Context()
	node, err := openDevice(ctx)
	if err != nil {
		return err
	}
	defer device.Close(node)
	return fn(ctx, intf.New(node))
}

// batchRecorder remembers the batches sent through it.
type batchRecorder struct {
	device.Node
	batches [][]string
}

func (r *batchRecorder) Configure(ctx context.Context, commands ...string) error {
	r.batches = append(r.batches, commands)
	return r.Node.Configure(ctx, commands...)
}

func (r *batchRecorder) commands() []string {
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

// withWrite runs a mutating fn against the -d device. Without -x the
// commands are validated against a copy of the running configuration and
// shown with the resulting diff; with -x they are sent and audited.
func withWrite(cmd *cobra.Command, op intf.Operation, name string, fn func(ctx context.Context, f *intf.Interfaces) error) error {
	ctx := cmd.Context()
	node, err := openDevice(ctx)
	if err != nil {
		return err
	}
	defer device.Close(node)

	if !app.executeMode {
		dry, err := device.NewDryRun(ctx, node)
		if err != nil {
			return err
		}
		if err := fn(ctx, intf.New(dry)); err != nil {
			return err
		}
		return printPreview(dry)
	}

	rec := &batchRecorder{Node: node}
	event := audit.NewEvent(node.Name(), name, string(op))
	err = fn(ctx, intf.New(rec))
	util.WithOperation(string(op)).WithField("device", node.Name()).Debugf("Sent %d batch(es), err=%v", len(rec.batches), err)
	event.WithCommands(rec.commands()).Finish(err)
	if app.audit != nil {
		if lerr := app.audit.Log(event); lerr != nil {
			util.Warnf("Could not write audit event: %v", lerr)
		}
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	if len(rec.batches) == 0 {
		fmt.Println("No changes.")
		return nil
	}
	printBatches(rec.batches)
	fmt.Println("\n" + green("Changes applied successfully."))
	return nil
}

func printPreview(dry *device.DryRun) error {
	batches := dry.Batches()
	if len(batches) == 0 {
		fmt.Println("No changes.")
		return nil
	}
	printBatches(batches)

	diff, err := dry.Diff()
	if err != nil {
		return err
	}
	if diff != "" {
		fmt.Println()
		cli.PrintDiff(os.Stdout, diff)
	}
	fmt.Println("\n" + yellow("DRY-RUN: No changes applied. Use -x to execute."))
	return nil
}

func printBatches(batches [][]string) {
	fmt.Println("Commands:")
	for _, b := range batches {
		for _, c := range b {
			fmt.Println("  " + c)
		}
	}
}

func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
