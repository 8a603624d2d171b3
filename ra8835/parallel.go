// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	// resetPulse is how long RES is held low.
	resetPulse = 2 * time.Microsecond
	// defaultStrobe covers the 8080 bus setup and hold times.
	defaultStrobe = time.Microsecond
)

// ParallelBus drives the controller's 8080 style interface with GPIO: eight
// data lines D0..D7 and the A0, /WR, /RD, /CS and /RES control lines.
//
// The data lines can be any gpio.Group, for example a host line set or a
// shift register.
type ParallelBus struct {
	data   gpio.Group
	a0     gpio.PinOut
	wr     gpio.PinOut
	rd     gpio.PinOut
	cs     gpio.PinOut
	rst    gpio.PinOut
	strobe time.Duration
}

// NewParallelBus returns a bus using the first 8 pins of data as D0..D7.
//
// a0 and wr are required. rd, cs and rst may be nil when the line is tied on
// the board (/RD high, /CS low, /RES high).
func NewParallelBus(data gpio.Group, a0, wr, rd, cs, rst gpio.PinOut) (*ParallelBus, error) {
	if data == nil || len(data.Pins()) < 8 {
		return nil, errors.New("ra8835: the data group needs 8 pins")
	}
	if a0 == nil || wr == nil {
		return nil, errors.New("ra8835: A0 and /WR are required")
	}
	b := &ParallelBus{data: data, a0: a0, wr: wr, rd: rd, cs: cs, rst: rst, strobe: defaultStrobe}
	// Idle levels.
	s := pinSequence{}
	s.out(b.wr, gpio.High)
	s.out(b.rd, gpio.High)
	s.out(b.cs, gpio.High)
	s.out(b.rst, gpio.High)
	if s.err != nil {
		return nil, s.err
	}
	return b, nil
}

// SetStrobe changes the delay around the data lines update. The default is
// 1µs.
func (b *ParallelBus) SetStrobe(d time.Duration) {
	b.strobe = d
}

// Command implements Bus.
func (b *ParallelBus) Command(c byte) error {
	return b.send(c, gpio.High)
}

// Data implements Bus.
func (b *ParallelBus) Data(p []byte) error {
	for _, v := range p {
		if err := b.send(v, gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// Reset implements Resetter. It is a no-op without a /RES pin.
func (b *ParallelBus) Reset() error {
	if b.rst == nil {
		return nil
	}
	s := pinSequence{}
	s.out(b.rst, gpio.High)
	s.wait(resetPulse)
	s.out(b.rst, gpio.Low)
	s.wait(resetPulse)
	s.out(b.rst, gpio.High)
	return s.err
}

// Halt implements conn.Resource. It halts the data group.
func (b *ParallelBus) Halt() error {
	return b.data.Halt()
}

func (b *ParallelBus) String() string {
	return fmt.Sprintf("ParallelBus{%s}", b.data)
}

// send latches one byte on the rising edge of /WR.
func (b *ParallelBus) send(v byte, a0 gpio.Level) error {
	s := pinSequence{}
	s.out(b.rd, gpio.High)
	s.out(b.wr, gpio.High)
	s.out(b.a0, a0)
	s.out(b.cs, gpio.Low)
	s.out(b.wr, gpio.Low)
	s.wait(b.strobe)
	s.group(b.data, gpio.GPIOValue(v), 0xff)
	s.wait(b.strobe)
	s.out(b.wr, gpio.High)
	s.out(b.cs, gpio.High)
	return s.err
}

// pinSequence is a wrapper for error management of successive pin writes.
type pinSequence struct {
	err error
}

// out skips nil pins, they are tied on the board.
func (s *pinSequence) out(p gpio.PinOut, l gpio.Level) {
	if s.err != nil || p == nil {
		return
	}
	s.err = p.Out(l)
}

func (s *pinSequence) group(g gpio.Group, v, mask gpio.GPIOValue) {
	if s.err != nil {
		return
	}
	s.err = g.Out(v, mask)
}

func (s *pinSequence) wait(d time.Duration) {
	if s.err != nil || d <= 0 {
		return
	}
	time.Sleep(d)
}

var _ Bus = &ParallelBus{}
var _ Resetter = &ParallelBus{}
var _ conn.Resource = &ParallelBus{}
