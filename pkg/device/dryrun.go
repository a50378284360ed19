package device

import (
	"context"
	"errors"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// DryRun wraps a node so that configuration commands are validated and
// recorded against a local copy of its running configuration instead of
// being sent. Enable-mode commands the local copy cannot answer are passed
// to the wrapped node, which is never written to.
type DryRun struct {
	base     Node
	original string
	sandbox  *MemoryNode
}

// NewDryRun snapshots base's running configuration.
func NewDryRun(ctx context.Context, base Node) (*DryRun, error) {
	config, err := base.RunningConfig(ctx)
	if err != nil {
		return nil, err
	}
	sandbox := NewMemoryNode(base.Name(), config)
	return &DryRun{base: base, original: sandbox.config, sandbox: sandbox}, nil
}

func (d *DryRun) Name() string { return d.base.Name() }

func (d *DryRun) RunningConfig(ctx context.Context) (string, error) {
	return d.sandbox.RunningConfig(ctx)
}

func (d *DryRun) Configure(ctx context.Context, commands ...string) error {
	if err := d.sandbox.Configure(ctx, commands...); err != nil {
		return err
	}
	util.WithDevice(d.Name()).Debugf("Dry run: recorded %d command(s)", len(commands))
	return nil
}

func (d *DryRun) Enable(ctx context.Context, command string, enc Encoding) (string, error) {
	config, err := d.sandbox.RunningConfig(ctx)
	if err != nil {
		return "", err
	}
	out, err := Show(config, command, enc)
	if errors.Is(err, errUnsupportedShow) {
		return d.base.Enable(ctx, command, enc)
	}
	if err != nil {
		return "", util.NewCommandError(d.Name(), []string{command}, cliOutput(err))
	}
	return out, nil
}

// Batches returns the recorded configure batches in order.
func (d *DryRun) Batches() [][]string {
	return d.sandbox.Batches()
}

// Commands returns every recorded command, flattened across batches.
func (d *DryRun) Commands() []string {
	var out []string
	for _, b := range d.sandbox.Batches() {
		out = append(out, b...)
	}
	return out
}

// Diff returns a unified diff from the snapshot to the configuration the
// recorded commands would produce. It is empty when nothing changed.
func (d *DryRun) Diff() (string, error) {
	d.sandbox.mu.Lock()
	updated := d.sandbox.config
	d.sandbox.mu.Unlock()

	if updated == d.original {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(d.original),
		B:        difflib.SplitLines(updated),
		FromFile: d.Name() + " (running)",
		ToFile:   d.Name() + " (proposed)",
		Context:  3,
	})
}
