package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// maxTxRetries bounds optimistic-lock retries when another writer changes
// the running configuration during a Configure.
const maxTxRetries = 3

// historyLen is how many accepted batches are kept in the history list.
const historyLen = 100

// RedisNode is an emulated device whose running configuration is stored in
// a Redis string key, so that several processes can share one lab device.
// Batches are applied with WATCH/MULTI/EXEC so concurrent writers never
// interleave inside a batch.
type RedisNode struct {
	name   string
	key    string
	client *redis.Client
}

// RedisOptions locates a device's configuration in Redis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Key holds the running configuration; defaults to "ifcfg:<name>:running-config".
	Key string
}

// NewRedisNode creates a Redis-backed device. Call Connect before use.
func NewRedisNode(name string, opts RedisOptions) *RedisNode {
	key := opts.Key
	if key == "" {
		key = RedisKey(name)
	}
	return &RedisNode{
		name: name,
		key:  key,
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
	}
}

// RedisKey returns the default running-configuration key for a device.
func RedisKey(name string) string {
	return "ifcfg:" + name + ":running-config"
}

// Connect tests the connection.
func (n *RedisNode) Connect(ctx context.Context) error {
	if err := n.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: redis ping: %w: %v", n.name, util.ErrNotConnected, err)
	}
	return nil
}

// Close closes the connection.
func (n *RedisNode) Close() error {
	return n.client.Close()
}

func (n *RedisNode) Name() string { return n.name }

// Seed replaces the stored running configuration.
func (n *RedisNode) Seed(ctx context.Context, config string) error {
	return n.client.Set(ctx, n.key, NormalizeConfig(config), 0).Err()
}

func (n *RedisNode) RunningConfig(ctx context.Context) (string, error) {
	config, err := n.client.Get(ctx, n.key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("%s: no running configuration at %s: %w", n.name, n.key, util.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: reading running config: %w", n.name, err)
	}
	return config, nil
}

func (n *RedisNode) Configure(ctx context.Context, commands ...string) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, n.key).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		updated, err := Apply(current, commands)
		if err != nil {
			return util.NewCommandError(n.name, commands, cliOutput(err))
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, n.key, updated, 0)
			pipe.LPush(ctx, n.key+":history", strings.Join(commands, "\n"))
			pipe.LTrim(ctx, n.key+":history", 0, historyLen-1)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := n.client.Watch(ctx, txf, n.key)
		if err == nil {
			util.WithDevice(n.name).Debugf("Applied %d command(s)", len(commands))
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			util.WithDevice(n.name).Debugf("Running config changed during configure, retrying (%d)", attempt+1)
			continue
		}
		return err
	}
	return fmt.Errorf("%s: configure: running config kept changing after %d attempts", n.name, maxTxRetries)
}

func (n *RedisNode) Enable(ctx context.Context, command string, enc Encoding) (string, error) {
	config, err := n.RunningConfig(ctx)
	if err != nil {
		return "", err
	}
	out, err := Show(config, command, enc)
	if err != nil {
		return "", util.NewCommandError(n.name, []string{command}, cliOutput(err))
	}
	return out, nil
}

// History returns the most recent accepted batches, newest first.
func (n *RedisNode) History(ctx context.Context, limit int64) ([][]string, error) {
	if limit <= 0 {
		limit = historyLen
	}
	entries, err := n.client.LRange(ctx, n.key+":history", 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = strings.Split(e, "\n")
	}
	return out, nil
}
