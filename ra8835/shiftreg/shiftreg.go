// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package shiftreg drives the 8 data lines of an RA8835 panel through a
// 74HC595 serial to parallel shift register on an SPI port.
//
// Wire MOSI to SER, SCLK to SRCLK and the chip select to RCLK so the outputs
// update when the transfer ends. QA..QH go to D0..D7; the SPI port must send
// the most significant bit first. The control lines stay on GPIO, see
// ra8835.NewParallelBus.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
package shiftreg

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
)

const numLines = 8

// ErrWriteOnly is returned for input operations, the register has no
// inputs.
var ErrWriteOnly = errors.New("shiftreg: lines are write only")

// Lines implements gpio.Group for the outputs of a 74HC595.
//
// Writes leaving the outputs unchanged don't generate a transfer.
type Lines struct {
	mu     sync.Mutex
	conn   spi.Conn
	value  byte
	synced bool
	pins   [numLines]Line
}

// New returns the outputs of a 74HC595 connected to conn.
func New(conn spi.Conn) *Lines {
	l := &Lines{conn: conn}
	for i := range l.pins {
		l.pins[i] = Line{l: l, n: i}
	}
	return l
}

// Pins implements gpio.Group. It returns QA..QH.
func (l *Lines) Pins() []pin.Pin {
	out := make([]pin.Pin, numLines)
	for i := range l.pins {
		out[i] = &l.pins[i]
	}
	return out
}

// ByOffset implements gpio.Group.
func (l *Lines) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= numLines {
		return nil
	}
	return &l.pins[offset]
}

// ByName implements gpio.Group.
func (l *Lines) ByName(name string) pin.Pin {
	for i := range l.pins {
		if l.pins[i].Name() == name {
			return &l.pins[i]
		}
	}
	return nil
}

// ByNumber implements gpio.Group. Numbers are the same as offsets.
func (l *Lines) ByNumber(number int) pin.Pin {
	return l.ByOffset(number)
}

// Out implements gpio.Group. Only the lines in mask are changed, a mask of 0
// selects all of them.
func (l *Lines) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = 1<<numLines - 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	v := l.value&^byte(mask) | byte(value&mask)
	if l.synced && v == l.value {
		return nil
	}
	if err := l.conn.Tx([]byte{v}, nil); err != nil {
		return fmt.Errorf("shiftreg: %w", err)
	}
	l.value = v
	l.synced = true
	return nil
}

// Read implements gpio.Group. It always fails.
func (l *Lines) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, ErrWriteOnly
}

// WaitForEdge implements gpio.Group. It always fails.
func (l *Lines) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrWriteOnly
}

// Halt implements conn.Resource. It drives all outputs low.
func (l *Lines) Halt() error {
	return l.Out(0, 0)
}

func (l *Lines) String() string {
	return "74HC595"
}

// Line is one output of the register.
type Line struct {
	l *Lines
	n int
}

// Halt implements conn.Resource.
func (p *Line) Halt() error {
	return nil
}

// Name returns the name of the output.
func (p *Line) Name() string {
	return fmt.Sprintf("Q%c", 'A'+p.n)
}

// Number returns the offset of the output, 0 for QA.
func (p *Line) Number() int {
	return p.n
}

// Deprecated: returns "Out"
func (p *Line) Function() string {
	return "Out"
}

// Out implements gpio.PinOut.
func (p *Line) Out(level gpio.Level) error {
	var v gpio.GPIOValue
	if level {
		v = 1 << p.n
	}
	return p.l.Out(v, 1<<p.n)
}

// PWM is not supported.
func (p *Line) PWM(duty gpio.Duty, f physic.Frequency) error {
	return fmt.Errorf("shiftreg: %s: PWM is not supported", p)
}

func (p *Line) String() string {
	return p.l.String() + "." + p.Name()
}

var _ gpio.Group = &Lines{}
var _ gpio.PinOut = &Line{}
