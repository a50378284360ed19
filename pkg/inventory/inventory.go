// Package inventory loads the YAML device inventory and opens connections
// to the devices it lists.
package inventory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// Transport selects how a device is reached.
type Transport string

const (
	TransportSSH   Transport = "ssh"
	TransportRedis Transport = "redis"
	TransportFile  Transport = "file"
)

// Device describes one switch.
type Device struct {
	Name      string        `yaml:"-"`
	Transport Transport     `yaml:"transport"`
	Host      string        `yaml:"host,omitempty"`
	Port      int           `yaml:"port,omitempty"`
	Username  string        `yaml:"username,omitempty"`
	Password  string        `yaml:"password,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`

	// Redis lab devices
	Address string `yaml:"address,omitempty"`
	DB      int    `yaml:"db,omitempty"`
	Key     string `yaml:"key,omitempty"`

	// File-backed devices; relative paths are resolved against the
	// inventory file's directory.
	Path string `yaml:"path,omitempty"`
}

// Inventory is the parsed inventory file.
type Inventory struct {
	Defaults Device             `yaml:"defaults"`
	Devices  map[string]*Device `yaml:"devices"`

	dir string
}

// PasswordFunc supplies a password that is not in the inventory.
type PasswordFunc func(dev *Device) (string, error)

// Load reads and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, err
	}
	inv.dir = filepath.Dir(path)
	return inv, nil
}

// Parse decodes and validates inventory YAML. Device entries inherit any
// field they leave empty from defaults, and ${VAR} references in
// passwords are expanded from the environment.
func Parse(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory YAML: %w", err)
	}
	if len(inv.Devices) == 0 {
		return nil, fmt.Errorf("inventory lists no devices: %w", util.ErrInvalidConfig)
	}

	for name, dev := range inv.Devices {
		if dev == nil {
			dev = &Device{}
			inv.Devices[name] = dev
		}
		dev.Name = name
		dev.applyDefaults(&inv.Defaults)
		dev.Password = os.ExpandEnv(dev.Password)
		if err := dev.Validate(); err != nil {
			return nil, fmt.Errorf("device %s: %w", name, err)
		}
	}
	return &inv, nil
}

func (d *Device) applyDefaults(def *Device) {
	if d.Transport == "" {
		d.Transport = def.Transport
	}
	if d.Transport == "" {
		d.Transport = TransportSSH
	}
	if d.Port == 0 {
		d.Port = def.Port
	}
	if d.Username == "" {
		d.Username = def.Username
	}
	if d.Password == "" {
		d.Password = def.Password
	}
	if d.Timeout == 0 {
		d.Timeout = def.Timeout
	}
	if d.Address == "" {
		d.Address = def.Address
	}
}

// Validate checks that the fields the transport needs are present.
func (d *Device) Validate() error {
	v := &util.ValidationBuilder{}
	switch d.Transport {
	case TransportSSH:
		v.Add(d.Host != "", "host is required for ssh")
		v.Add(d.Username != "", "username is required for ssh")
		v.Add(d.Port >= 0 && d.Port <= 65535, fmt.Sprintf("invalid port %d", d.Port))
	case TransportRedis:
		v.Add(d.Address != "", "address is required for redis")
		v.Add(d.DB >= 0, fmt.Sprintf("invalid db %d", d.DB))
	case TransportFile:
		v.Add(d.Path != "", "path is required for file")
	default:
		v.AddErrorf("unknown transport %q (want ssh, redis or file)", d.Transport)
	}
	return v.Build()
}

// Names returns the device names in sorted order.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Devices))
	for name := range inv.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Device looks up a device by name.
func (inv *Inventory) Device(name string) (*Device, error) {
	dev, ok := inv.Devices[name]
	if !ok {
		return nil, fmt.Errorf("device %q: %w", name, util.ErrNotFound)
	}
	return dev, nil
}

// Open connects to the named device. password is consulted for SSH
// devices without a password and may be nil.
func (inv *Inventory) Open(ctx context.Context, name string, password PasswordFunc) (device.Node, error) {
	dev, err := inv.Device(name)
	if err != nil {
		return nil, err
	}
	util.WithDevice(name).Debugf("Opening %s device", dev.Transport)

	switch dev.Transport {
	case TransportFile:
		path := dev.Path
		if !filepath.IsAbs(path) && inv.dir != "" {
			path = filepath.Join(inv.dir, path)
		}
		return device.LoadFile(name, path)

	case TransportRedis:
		n := device.NewRedisNode(name, device.RedisOptions{
			Addr:     dev.Address,
			Password: dev.Password,
			DB:       dev.DB,
			Key:      dev.Key,
		})
		if err := n.Connect(ctx); err != nil {
			n.Close()
			return nil, err
		}
		return n, nil

	default:
		pass := dev.Password
		if pass == "" && password != nil {
			if pass, err = password(dev); err != nil {
				return nil, fmt.Errorf("reading password for %s: %w", name, err)
			}
		}
		n := device.NewSSHNode(name, device.SSHConfig{
			Host:     dev.Host,
			Port:     dev.Port,
			Username: dev.Username,
			Password: pass,
			Timeout:  dev.Timeout,
		})
		if err := n.Connect(ctx); err != nil {
			return nil, err
		}
		return n, nil
	}
}
