// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bridge

import (
	"fmt"
	"io"
	"sync"

	"github.com/GermanBionicSystems/lcd/ra8835"
	"go.bug.st/serial"
	"periph.io/x/conn/v3"
)

// Frame tags.
const (
	tagCommand byte = 0x01
	tagData    byte = 0x02
	tagReset   byte = 0x03
)

// maxChunk is the most data bytes a single frame carries.
const maxChunk = 255

// DefaultBaud is the speed the bridge firmware listens at.
const DefaultBaud = 115200

// Bus implements ra8835.Bus and ra8835.Resetter over a byte stream.
type Bus struct {
	mu   sync.Mutex
	w    io.Writer
	name string
	buf  []byte
}

// New returns a Bus writing frames to w, for example an already opened
// serial port or a TCP connection to a serial server.
func New(w io.Writer) *Bus {
	return &Bus{w: w, name: fmt.Sprintf("%T", w)}
}

// Open opens the serial port name at baud bits per second, 8N1. A baud of 0
// selects DefaultBaud.
func Open(name string, baud int) (*Bus, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("bridge: cannot open serial port %s: %w", name, err)
	}
	return &Bus{w: port, name: name}, nil
}

// Command implements ra8835.Bus.
func (b *Bus) Command(c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write(tagCommand, c)
}

// Data implements ra8835.Bus. Long writes are split in frames of 255 bytes.
func (b *Bus) Data(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = b.buf[:0]
	for len(p) > 0 {
		n := min(len(p), maxChunk)
		b.buf = append(b.buf, tagData, byte(n))
		b.buf = append(b.buf, p[:n]...)
		p = p[n:]
	}
	return b.flush()
}

// Reset implements ra8835.Resetter.
func (b *Bus) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write(tagReset)
}

// Halt implements conn.Resource. If the underlying writer implements
// io.Closer, it is closed.
func (b *Bus) Halt() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cl, ok := b.w.(io.Closer); ok {
		if err := cl.Close(); err != nil {
			return fmt.Errorf("bridge: %w", err)
		}
	}
	return nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("bridge.Bus{%s}", b.name)
}

func (b *Bus) write(frame ...byte) error {
	b.buf = append(b.buf[:0], frame...)
	return b.flush()
}

func (b *Bus) flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	n, err := b.w.Write(b.buf)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	if n < len(b.buf) {
		return fmt.Errorf("bridge: wrote only %d of %d bytes: %w", n, len(b.buf), io.ErrShortWrite)
	}
	return nil
}

var _ ra8835.Bus = &Bus{}
var _ ra8835.Resetter = &Bus{}
var _ conn.Resource = &Bus{}
