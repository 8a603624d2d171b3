// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

// Bus is the byte transport to the controller.
//
// The controller never acknowledges anything; errors only come from the host
// side of the transport.
type Bus interface {
	// Command writes one opcode, A0 high.
	Command(c byte) error
	// Data writes parameter or display memory bytes, A0 low, one transfer per
	// byte.
	Data(p []byte) error
}

// Resetter is implemented by buses wired to the controller's RES line.
type Resetter interface {
	// Reset pulses RES low.
	Reset() error
}

// burst sequences controller commands and keeps the first error.
//
// A display memory write is CSRW with the start address, CSRDIR, then MWRITE
// followed by the data. Nothing may be interleaved once CSRW is sent.
type burst struct {
	bus Bus
	err error
}

func (b *burst) command(c byte, params ...byte) {
	if b.err != nil {
		return
	}
	b.err = b.bus.Command(c)
	b.data(params)
}

func (b *burst) data(p []byte) {
	if b.err != nil || len(p) == 0 {
		return
	}
	b.err = b.bus.Data(p)
}

// setCursor sends CSRW, address low byte first.
func (b *burst) setCursor(addr uint16) {
	b.command(cmdCSRW, byte(addr), byte(addr>>8))
}

func (b *burst) direction(d Direction) {
	b.command(byte(d))
}

func (b *burst) write(p []byte) {
	b.command(cmdMWrite)
	b.data(p)
}

// run writes p to display memory starting at addr.
func (b *burst) run(addr uint16, d Direction, p []byte) {
	b.setCursor(addr)
	b.direction(d)
	b.write(p)
}
