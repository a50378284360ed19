package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// MemoryNode is an emulated device whose running configuration lives in
// memory. Configuration commands are interpreted by Apply.
type MemoryNode struct {
	name string

	mu      sync.Mutex
	config  string
	batches [][]string

	// commit, when set, persists an accepted configuration before it
	// becomes visible. A commit error rejects the batch.
	commit func(config string) error
}

// NewMemoryNode creates an emulated device seeded with config.
func NewMemoryNode(name, config string) *MemoryNode {
	return &MemoryNode{name: name, config: NormalizeConfig(config)}
}

// LoadFile creates an emulated device backed by a running-configuration
// file. Every accepted batch rewrites the file.
func LoadFile(name, path string) (*MemoryNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading running config %s: %w", path, err)
	}
	n := NewMemoryNode(name, string(data))
	n.commit = func(config string) error {
		return writeFileAtomic(path, []byte(config))
	}
	return n, nil
}

func (n *MemoryNode) Name() string { return n.name }

func (n *MemoryNode) RunningConfig(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.config, nil
}

func (n *MemoryNode) Configure(ctx context.Context, commands ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	updated, err := Apply(n.config, commands)
	if err != nil {
		return util.NewCommandError(n.name, commands, cliOutput(err))
	}
	if n.commit != nil {
		if err := n.commit(updated); err != nil {
			return fmt.Errorf("%s: saving configuration: %w", n.name, err)
		}
	}
	n.config = updated
	n.batches = append(n.batches, append([]string(nil), commands...))

	util.WithDevice(n.name).Debugf("Applied %d command(s)", len(commands))
	return nil
}

func (n *MemoryNode) Enable(ctx context.Context, command string, enc Encoding) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	out, err := Show(n.config, command, enc)
	if err != nil {
		return "", util.NewCommandError(n.name, []string{command}, cliOutput(err))
	}
	return out, nil
}

// Batches returns every accepted configure batch in order.
func (n *MemoryNode) Batches() [][]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]string, len(n.batches))
	for i, b := range n.batches {
		out[i] = append([]string(nil), b...)
	}
	return out
}

// cliOutput renders an emulator error the way the device would print it.
func cliOutput(err error) string {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	if errors.Is(err, errUnsupportedShow) {
		return msgInvalidInput
	}
	return err.Error()
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
