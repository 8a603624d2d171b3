// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package shiftreg

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/lcd/ra8835"
	"github.com/GermanBionicSystems/lcd/ra8835/ra8835test"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

func getLines(t *testing.T) (*Lines, *spitest.Record) {
	t.Helper()
	record := &spitest.Record{}
	conn, err := record.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	return New(conn), record
}

func written(ops []conntest.IO) []byte {
	var out []byte
	for _, op := range ops {
		out = append(out, op.W...)
	}
	return out
}

func TestOut(t *testing.T) {
	l, record := getLines(t)
	steps := []struct {
		value, mask gpio.GPIOValue
	}{
		{0x00, 0},    // first write always goes out
		{0x00, 0xff}, // unchanged
		{0xA5, 0xff},
		{0xFF, 0x0F}, // low nibble only
		{0x00, 0x80},
		{0x2F, 0x7F}, // unchanged
		{0x100, 0x100},
	}
	for _, s := range steps {
		if err := l.Out(s.value, s.mask); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(written(record.Ops), []byte{0x00, 0xA5, 0xAF, 0x2F}); diff != "" {
		t.Errorf("transfers (-got +want):\n%s", diff)
	}
}

func TestLines(t *testing.T) {
	l, record := getLines(t)
	pins := l.Pins()
	if len(pins) != 8 || pins[0].Name() != "QA" || pins[7].Name() != "QH" {
		t.Fatalf("Pins() = %v", pins)
	}
	if l.ByName("QC") != pins[2] || l.ByNumber(5) != pins[5] || l.ByOffset(8) != nil || l.ByName("D0") != nil {
		t.Error("pin lookup mismatch")
	}
	qh := l.ByOffset(7).(gpio.PinOut)
	if err := qh.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := l.pins[0].Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := qh.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(written(record.Ops), []byte{0x80, 0x81, 0x01}); diff != "" {
		t.Errorf("transfers (-got +want):\n%s", diff)
	}
	if s := qh.String(); s != "74HC595.QH" {
		t.Errorf("String() = %q", s)
	}
	if _, err := l.Read(0xff); !errors.Is(err, ErrWriteOnly) {
		t.Errorf("Read() = %v", err)
	}
	if err := qh.PWM(gpio.DutyHalf, physic.KiloHertz); err == nil {
		t.Error("PWM() must fail")
	}
	if err := l.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := written(record.Ops); got[len(got)-1] != 0 {
		t.Errorf("Halt() left the outputs at %#x", got[len(got)-1])
	}
}

// The register carries the data lines of a ParallelBus.
func TestParallelBus(t *testing.T) {
	l, record := getLines(t)
	a0, wr := &gpiotest.Pin{N: "A0"}, &gpiotest.Pin{N: "WR"}
	bus, err := ra8835.NewParallelBus(l, a0, wr, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	bus.SetStrobe(0)
	if err := bus.Command(ra8835test.CSRW); err != nil {
		t.Fatal(err)
	}
	if err := bus.Data([]byte{0x34, 0x34, 0x12}); err != nil {
		t.Fatal(err)
	}
	// Repeated bytes don't need a transfer, /WR still latches them.
	if diff := cmp.Diff(written(record.Ops), []byte{ra8835test.CSRW, 0x34, 0x12}); diff != "" {
		t.Errorf("transfers (-got +want):\n%s", diff)
	}
	if a0.Read() != gpio.Low {
		t.Error("A0 must be low after data")
	}
}
