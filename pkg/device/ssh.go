package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// SSHConfig holds the connection parameters for an EOS device.
type SSHConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SSHNode drives a live EOS device over SSH. Configuration batches run
// inside a named configure session, which is committed only when every
// command was accepted and aborted otherwise.
//
// The running configuration is read once and reused until this node
// commits a batch or Refresh is called. Changes made through other
// sessions are not seen in between.
type SSHNode struct {
	name   string
	cfg    SSHConfig
	client *ssh.Client

	mu      sync.Mutex
	running string
	cached  bool
}

// NewSSHNode creates an SSH node. Call Connect before use.
func NewSSHNode(name string, cfg SSHConfig) *SSHNode {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SSHNode{name: name, cfg: cfg}
}

// Connect dials the device and authenticates.
func (n *SSHNode) Connect(ctx context.Context) error {
	pass := n.cfg.Password
	config := &ssh.ClientConfig{
		User: n.cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(pass),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = pass
				}
				return answers, nil
			}),
		},
		// Lab/test environment; production would verify host keys.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         n.cfg.Timeout,
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	dialer := net.Dialer{Timeout: n.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("SSH dial %s: %w: %v", addr, util.ErrNotConnected, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SSH handshake %s: %w: %v", addr, util.ErrNotConnected, err)
	}
	n.client = ssh.NewClient(c, chans, reqs)

	util.WithDevice(n.name).Debugf("Connected to %s", addr)
	return nil
}

// Close closes the SSH connection.
func (n *SSHNode) Close() error {
	if n.client == nil {
		return nil
	}
	err := n.client.Close()
	n.client = nil
	return err
}

func (n *SSHNode) Name() string { return n.name }

// RunningConfig returns the running configuration. It is fetched once and
// cached until the next successful Configure.
func (n *SSHNode) RunningConfig(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cached {
		return n.running, nil
	}

	out, err := n.exec(ctx, "show running-config")
	if err != nil {
		return "", err
	}
	if msgs := cliErrors(out); len(msgs) > 0 {
		return "", util.NewCommandError(n.name, []string{"show running-config"}, strings.Join(msgs, "\n"))
	}
	n.running = out
	n.cached = true
	return out, nil
}

// Refresh drops the cached running configuration so the next read goes
// to the device.
func (n *SSHNode) Refresh() {
	n.mu.Lock()
	n.cached = false
	n.running = ""
	n.mu.Unlock()
}

func (n *SSHNode) Enable(ctx context.Context, command string, enc Encoding) (string, error) {
	if enc == EncodingJSON {
		command += " | json"
	}
	out, err := n.exec(ctx, command)
	if err != nil {
		return "", err
	}
	if msgs := cliErrors(out); len(msgs) > 0 {
		return "", util.NewCommandError(n.name, []string{command}, strings.Join(msgs, "\n"))
	}
	return out, nil
}

func (n *SSHNode) Configure(ctx context.Context, commands ...string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	session := fmt.Sprintf("ifcfg-%d", time.Now().UnixNano())
	var script strings.Builder
	script.WriteString("enable\nconfigure session " + session + "\n")
	for _, c := range commands {
		script.WriteString(c)
		script.WriteByte('\n')
	}
	script.WriteString("end\n")

	out, err := n.shell(ctx, script.String())
	if err != nil {
		return err
	}
	if msgs := cliErrors(out); len(msgs) > 0 {
		if _, err := n.shell(ctx, "enable\nno configure session "+session+"\n"); err != nil {
			util.WithDevice(n.name).Warnf("Aborting configure session %s: %v", session, err)
		}
		return util.NewCommandError(n.name, commands, strings.Join(msgs, "\n"))
	}

	out, err = n.shell(ctx, "enable\nconfigure session "+session+" commit\n")
	if err != nil {
		return err
	}
	if msgs := cliErrors(out); len(msgs) > 0 {
		return util.NewCommandError(n.name, commands, strings.Join(msgs, "\n"))
	}

	n.cached = false
	util.WithDevice(n.name).Debugf("Committed %d command(s) in session %s", len(commands), session)
	return nil
}

// exec runs a single command and returns its combined output.
func (n *SSHNode) exec(ctx context.Context, command string) (string, error) {
	return n.run(ctx, func(s *ssh.Session, out *bytes.Buffer) error {
		s.Stdout = out
		s.Stderr = out
		return s.Run(command)
	})
}

// shell feeds script to an interactive CLI and returns everything printed.
func (n *SSHNode) shell(ctx context.Context, script string) (string, error) {
	return n.run(ctx, func(s *ssh.Session, out *bytes.Buffer) error {
		s.Stdin = strings.NewReader(script + "exit\n")
		s.Stdout = out
		s.Stderr = out
		if err := s.Shell(); err != nil {
			return err
		}
		return s.Wait()
	})
}

func (n *SSHNode) run(ctx context.Context, fn func(*ssh.Session, *bytes.Buffer) error) (string, error) {
	if n.client == nil {
		return "", fmt.Errorf("%s: %w", n.name, util.ErrNotConnected)
	}
	session, err := n.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- fn(session, &out) }()

	select {
	case <-ctx.Done():
		session.Close()
		return "", ctx.Err()
	case err := <-done:
		var exitErr *ssh.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return out.String(), fmt.Errorf("SSH exec on %s: %w", n.name, err)
		}
		return out.String(), nil
	}
}

// cliErrors returns the error lines EOS printed in output.
func cliErrors(output string) []string {
	var msgs []string
	for _, line := range splitLines(output) {
		if strings.HasPrefix(strings.TrimSpace(line), "% ") {
			msgs = append(msgs, strings.TrimSpace(line))
		}
	}
	return msgs
}
