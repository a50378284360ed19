//go:build integration

package testutil

import (
	"os"
	"testing"

	"github.com/newtron-network/ifcfg/pkg/device"
)

// SeedRunningConfig stores the fixture seedFile as the running configuration
// of device name and returns the key it was written to.
func SeedRunningConfig(t *testing.T, name, seedFile string) string {
	t.Helper()

	data, err := os.ReadFile(seedFile)
	if err != nil {
		t.Fatalf("reading seed file %s: %v", seedFile, err)
	}

	key := device.RedisKey(name)
	client := RedisClient(t)
	ctx := Context(t)
	if err := client.Del(ctx, key, key+":history").Err(); err != nil {
		t.Fatalf("clearing %s: %v", key, err)
	}
	if err := client.Set(ctx, key, device.NormalizeConfig(string(data)), 0).Err(); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
	return key
}

// ReadRunningConfig returns the stored running configuration of device name.
func ReadRunningConfig(t *testing.T, name string) string {
	t.Helper()

	config, err := RedisClient(t).Get(Context(t), device.RedisKey(name)).Result()
	if err != nil {
		t.Fatalf("reading %s: %v", device.RedisKey(name), err)
	}
	return config
}

// LabNode returns a connected Redis-backed node seeded from testdata/leaf1.cfg.
// Registers cleanup.
func LabNode(t *testing.T, name string) *device.RedisNode {
	t.Helper()
	SkipIfNoRedis(t)
	SeedRunningConfig(t, name, SeedPath("leaf1.cfg"))

	n := device.NewRedisNode(name, device.RedisOptions{Addr: RedisAddr(), DB: LabDB})
	if err := n.Connect(Context(t)); err != nil {
		t.Fatalf("connecting %s: %v", name, err)
	}
	t.Cleanup(func() { n.Close() })
	return n
}
