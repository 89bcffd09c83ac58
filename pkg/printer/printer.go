package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS bytes to a thermal receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ping reports whether the device is reachable
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and tunes the printer backend
type Config struct {
	Type         string // "usb", "network" or "none"
	USBPath      string // e.g. /dev/usb/lp0
	Address      string // e.g. 192.168.1.100:9100
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// New builds the Printer described by cfg
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for usb printers")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		p := &networkPrinter{address: cfg.Address, dialTimeout: cfg.DialTimeout, writeTimeout: cfg.WriteTimeout}
		if p.dialTimeout <= 0 {
			p.dialTimeout = 5 * time.Second
		}
		if p.writeTimeout <= 0 {
			p.writeTimeout = 10 * time.Second
		}
		return p, nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}

type usbPrinter struct {
	path string
	mu   sync.Mutex
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Ping(ctx context.Context) error {
	_, err := os.Stat(p.path)
	return err
}

func (p *usbPrinter) Close() error {
	return nil
}

type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return nil, fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	return conn, nil
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	deadline := time.Now().Add(p.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ping(ctx context.Context) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *networkPrinter) Close() error {
	return nil
}

type nullPrinter struct{}

// NewNullPrinter discards every job
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) Ping(context.Context) error          { return fmt.Errorf("printer: none configured") }
func (nullPrinter) Close() error                        { return nil }

// Recorder keeps every job in memory. Useful for previews and tests.
type Recorder struct {
	mu   sync.Mutex
	jobs [][]byte
}

func (r *Recorder) Print(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, bytes.Clone(data))
	return nil
}

func (r *Recorder) Ping(context.Context) error { return nil }
func (r *Recorder) Close() error               { return nil }

// Jobs returns the recorded jobs in print order
func (r *Recorder) Jobs() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.jobs))
	copy(out, r.jobs)
	return out
}
