// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GermanBionicSystems/lcd/ra8835/ra8835test"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/pin"
)

// latch is the state of the bus when the data lines are driven.
type latch struct {
	V          byte
	A0, WR, CS gpio.Level
}

// dataLines is a gpio.Group recording every byte put on D0..D7 along with
// the control lines, and optionally feeding it to an emulator.
type dataLines struct {
	pins       []*gpiotest.Pin
	a0, wr, cs *gpiotest.Pin
	latched    []latch
	emu        *ra8835test.Emulator
	halted     bool
	err        error
}

func newDataLines(n int) *dataLines {
	g := &dataLines{
		a0: &gpiotest.Pin{N: "A0"},
		wr: &gpiotest.Pin{N: "WR"},
		cs: &gpiotest.Pin{N: "CS"},
	}
	for i := range n {
		g.pins = append(g.pins, &gpiotest.Pin{N: fmt.Sprintf("D%d", i), Num: i})
	}
	return g
}

func (g *dataLines) Pins() []pin.Pin {
	out := make([]pin.Pin, len(g.pins))
	for i, p := range g.pins {
		out[i] = p
	}
	return out
}

func (g *dataLines) ByOffset(offset int) pin.Pin {
	return g.pins[offset]
}

func (g *dataLines) ByName(name string) pin.Pin {
	for _, p := range g.pins {
		if p.N == name {
			return p
		}
	}
	return nil
}

func (g *dataLines) ByNumber(number int) pin.Pin {
	for _, p := range g.pins {
		if p.Num == number {
			return p
		}
	}
	return nil
}

func (g *dataLines) Out(value, mask gpio.GPIOValue) error {
	if g.err != nil {
		return g.err
	}
	l := latch{V: byte(value & mask), A0: g.a0.Read(), WR: g.wr.Read(), CS: g.cs.Read()}
	g.latched = append(g.latched, l)
	if g.emu == nil {
		return nil
	}
	if l.A0 == gpio.High {
		return g.emu.Command(l.V)
	}
	return g.emu.Data([]byte{l.V})
}

func (g *dataLines) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, errors.New("write only")
}

func (g *dataLines) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, errors.New("write only")
}

func (g *dataLines) Halt() error {
	g.halted = true
	return nil
}

func (g *dataLines) String() string {
	return "dataLines"
}

// recPin records every level written to it.
type recPin struct {
	*gpiotest.Pin
	levels []gpio.Level
}

func (p *recPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return p.Pin.Out(l)
}

func getBus(t *testing.T, g *dataLines) (*ParallelBus, *gpiotest.Pin, *recPin) {
	t.Helper()
	rd := &gpiotest.Pin{N: "RD"}
	rst := &recPin{Pin: &gpiotest.Pin{N: "RST"}}
	b, err := NewParallelBus(g, g.a0, g.wr, rd, g.cs, rst)
	if err != nil {
		t.Fatal(err)
	}
	b.SetStrobe(0)
	return b, rd, rst
}

func TestNewParallelBus(t *testing.T) {
	g := newDataLines(8)
	b, rd, rst := getBus(t, g)
	for _, p := range []*gpiotest.Pin{g.wr, g.cs, rd, rst.Pin} {
		if p.Read() != gpio.High {
			t.Errorf("%s is not idle", p)
		}
	}
	if s := b.String(); s != "ParallelBus{dataLines}" {
		t.Errorf("String() = %q", s)
	}
	if err := b.Halt(); err != nil || !g.halted {
		t.Errorf("Halt() = %v, data lines halted %t", err, g.halted)
	}

	if _, err := NewParallelBus(newDataLines(7), g.a0, g.wr, nil, nil, nil); err == nil {
		t.Error("7 data lines must fail")
	}
	if _, err := NewParallelBus(nil, g.a0, g.wr, nil, nil, nil); err == nil {
		t.Error("nil data lines must fail")
	}
	if _, err := NewParallelBus(g, nil, g.wr, nil, nil, nil); err == nil {
		t.Error("missing A0 must fail")
	}
	if _, err := NewParallelBus(g, g.a0, nil, nil, nil, nil); err == nil {
		t.Error("missing /WR must fail")
	}
	// Tied lines are skipped.
	if _, err := NewParallelBus(newDataLines(16), g.a0, g.wr, nil, nil, nil); err != nil {
		t.Error(err)
	}
}

func TestParallelBusWrite(t *testing.T) {
	g := newDataLines(8)
	b, _, _ := getBus(t, g)
	if err := b.Command(0x46); err != nil {
		t.Fatal(err)
	}
	if err := b.Data([]byte{0x12, 0x34}); err != nil {
		t.Fatal(err)
	}
	want := []latch{
		{V: 0x46, A0: gpio.High, WR: gpio.Low, CS: gpio.Low},
		{V: 0x12, A0: gpio.Low, WR: gpio.Low, CS: gpio.Low},
		{V: 0x34, A0: gpio.Low, WR: gpio.Low, CS: gpio.Low},
	}
	if diff := cmp.Diff(g.latched, want); diff != "" {
		t.Errorf("bus cycles (-got +want):\n%s", diff)
	}
	// Latched on the rising edge, then deselected.
	if g.wr.Read() != gpio.High || g.cs.Read() != gpio.High {
		t.Error("/WR and /CS must be high between cycles")
	}
}

func TestParallelBusReset(t *testing.T) {
	g := newDataLines(8)
	b, _, rst := getBus(t, g)
	if err := b.Reset(); err != nil {
		t.Fatal(err)
	}
	want := []gpio.Level{gpio.High, gpio.High, gpio.Low, gpio.High}
	if diff := cmp.Diff(rst.levels, want); diff != "" {
		t.Errorf("/RES (-got +want):\n%s", diff)
	}

	nb, err := NewParallelBus(g, g.a0, g.wr, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := nb.Reset(); err != nil {
		t.Errorf("Reset() without /RES = %v", err)
	}
}

func TestParallelBusError(t *testing.T) {
	g := newDataLines(8)
	b, _, _ := getBus(t, g)
	g.err = errors.New("line busy")
	if err := b.Data([]byte{1, 2, 3}); !errors.Is(err, g.err) {
		t.Errorf("Data() = %v", err)
	}
	if err := b.Command(0x59); !errors.Is(err, g.err) {
		t.Errorf("Command() = %v", err)
	}
	if len(g.latched) != 0 {
		t.Errorf("%d bytes latched", len(g.latched))
	}
}

func TestParallelBusDevice(t *testing.T) {
	g := newDataLines(8)
	g.emu = &ra8835test.Emulator{}
	b, _, rst := getBus(t, g)
	d, err := New(b, smallOpts(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(rst.levels) != 4 {
		t.Errorf("New() didn't reset the controller: %v", rst.levels)
	}
	if got := g.emu.Size(); got != d.Bounds().Max {
		t.Errorf("controller size %v, want %v", got, d.Bounds().Max)
	}
	if err := d.WriteString(1, 0, []byte("ok")); err != nil {
		t.Fatal(err)
	}
	if got := g.emu.TextMemory()[:4]; string(got) != " ok " {
		t.Errorf("text = %q", got)
	}
}
var _ gpio.Group = &dataLines{}
