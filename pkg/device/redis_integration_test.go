//go:build integration

package device_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/newtron-network/ifcfg/internal/testutil"
	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

func TestRedisNodeRunningConfig(t *testing.T) {
	n := testutil.LabNode(t, "test-leaf1")

	config, err := n.RunningConfig(testutil.Context(t))
	if err != nil {
		t.Fatalf("RunningConfig failed: %v", err)
	}
	if !strings.Contains(config, "interface Port-Channel10\n") {
		t.Errorf("seeded config missing Port-Channel10:\n%s", config)
	}
}

func TestRedisNodeConfigure(t *testing.T) {
	n := testutil.LabNode(t, "test-leaf1")
	ctx := testutil.Context(t)

	if err := n.Configure(ctx, "interface Ethernet6", "channel-group 10 mode active"); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	stored := testutil.ReadRunningConfig(t, "test-leaf1")
	if !strings.Contains(stored, "interface Ethernet6\n   channel-group 10 mode active\n") {
		t.Errorf("change not stored:\n%s", stored)
	}

	out, err := n.Enable(ctx, "show port-channel 10 all-ports", device.EncodingText)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	for _, m := range []string{"Ethernet3", "Ethernet4", "Ethernet6"} {
		if !strings.Contains(out, m) {
			t.Errorf("member %s missing:\n%s", m, out)
		}
	}

	history, err := n.History(ctx, 1)
	if err != nil || len(history) != 1 || history[0][1] != "channel-group 10 mode active" {
		t.Errorf("History = %v, %v", history, err)
	}
}

func TestRedisNodeRejectedBatch(t *testing.T) {
	n := testutil.LabNode(t, "test-leaf1")
	before := testutil.ReadRunningConfig(t, "test-leaf1")

	err := n.Configure(testutil.Context(t), "interface Ethernet6", "description x", "channel-group 10 mode bogus")
	if !errors.Is(err, util.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if after := testutil.ReadRunningConfig(t, "test-leaf1"); after != before {
		t.Error("rejected batch modified the stored config")
	}
}

func TestRedisNodeConcurrentWriters(t *testing.T) {
	n := testutil.LabNode(t, "test-leaf1")
	other := device.NewRedisNode("test-leaf1", device.RedisOptions{Addr: testutil.RedisAddr(), DB: testutil.LabDB})
	defer other.Close()
	ctx := testutil.Context(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = n.Configure(ctx, "interface Ethernet5", "description a")
	}()
	go func() {
		defer wg.Done()
		errs[1] = other.Configure(ctx, "interface Ethernet6", "description b")
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d failed: %v", i, err)
		}
	}
	stored := testutil.ReadRunningConfig(t, "test-leaf1")
	if !strings.Contains(stored, "description a") || !strings.Contains(stored, "description b") {
		t.Errorf("a concurrent write was lost:\n%s", stored)
	}
}

func TestRedisNodeMissingKey(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	n := device.NewRedisNode("no-such-device", device.RedisOptions{Addr: testutil.RedisAddr(), DB: testutil.LabDB})
	defer n.Close()

	if _, err := n.RunningConfig(testutil.Context(t)); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisNodeSeed(t *testing.T) {
	n := testutil.LabNode(t, "test-leaf1")
	ctx := testutil.Context(t)

	if err := n.Seed(ctx, "interface Loopback0\r\n   description lab\r\n"); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	block, ok, err := device.GetBlock(ctx, n, "interface Loopback0")
	if err != nil || !ok {
		t.Fatalf("GetBlock = %v, %v", ok, err)
	}
	if block != "interface Loopback0\n   description lab" {
		t.Errorf("block = %q", block)
	}
	if _, ok, _ := device.GetBlock(ctx, n, "interface Port-Channel10"); ok {
		t.Error("Seed did not replace the previous configuration")
	}
}
