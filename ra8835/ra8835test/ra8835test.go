// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ra8835test is meant to be used to test drivers of the RA8835
// controller without hardware.
//
// Emulator decodes the command stream the way the controller does and keeps
// the 64KiB display memory, so tests can assert on what ends up on the panel.
package ra8835test

import (
	"fmt"
	"image"
	"sync"

	"github.com/GermanBionicSystems/lcd/ra8835/bitplane"
)

// Opcodes as documented in the datasheet.
const (
	SystemSet  byte = 0x40
	MWrite     byte = 0x42
	MRead      byte = 0x43
	Scroll     byte = 0x44
	CSRW       byte = 0x46
	CSRR       byte = 0x47
	CSRDirR    byte = 0x4C
	CSRDirL    byte = 0x4D
	CSRDirU    byte = 0x4E
	CSRDirD    byte = 0x4F
	SleepIn    byte = 0x53
	DisplayOff byte = 0x58
	DisplayOn  byte = 0x59
	HDotScr    byte = 0x5A
	Overlay    byte = 0x5B
	CGRAMAdr   byte = 0x5C
	CSRForm    byte = 0x5D
)

// Record is one command and the data bytes that followed it.
type Record struct {
	Cmd  byte
	Data []byte
}

// Burst is one display memory write: the cursor address and autoincrement
// direction at MWRITE and the bytes written.
type Burst struct {
	Addr uint16
	Dir  byte
	Data []byte
}

// Emulator implements ra8835.Bus and ra8835.Resetter.
type Emulator struct {
	sync.Mutex
	// Mem is the display memory.
	Mem [0x10000]byte
	// Records is the log of every command received.
	Records []Record
	// Bursts is the log of every display memory write.
	Bursts []Burst
	// Resets counts the RES pulses.
	Resets int
	// Err, when set, is returned by every call.
	Err error

	cursor uint16
	dir    byte
	// Decoded registers.
	bytesPerLine int
	lines        int
	pitch        int
	sad1, sad2   uint16
	sag          uint16
	attr         byte
	on           bool
	overlay      byte
	hdot         byte
	asleep       bool
}

// Command implements ra8835.Bus.
func (e *Emulator) Command(c byte) error {
	e.Lock()
	defer e.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Records = append(e.Records, Record{Cmd: c})
	e.asleep = c == SleepIn
	switch c {
	case CSRDirR, CSRDirL, CSRDirU, CSRDirD:
		e.dir = c
	case MWrite:
		// MWRITE without a new CSRW continues where the cursor is.
		e.Bursts = append(e.Bursts, Burst{Addr: e.cursor, Dir: e.dir})
	case DisplayOn:
		e.on = true
	case DisplayOff:
		e.on = false
	}
	return nil
}

// Data implements ra8835.Bus.
func (e *Emulator) Data(p []byte) error {
	e.Lock()
	defer e.Unlock()
	if e.Err != nil {
		return e.Err
	}
	if len(e.Records) == 0 {
		return fmt.Errorf("ra8835test: %d data bytes before any command", len(p))
	}
	r := &e.Records[len(e.Records)-1]
	for _, v := range p {
		i := len(r.Data)
		r.Data = append(r.Data, v)
		e.param(r.Cmd, i, v)
	}
	return nil
}

// Reset implements ra8835.Resetter. Display memory is retained.
func (e *Emulator) Reset() error {
	e.Lock()
	defer e.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Resets++
	return nil
}

// ClearLog forgets the recorded commands and bursts, the display memory is
// kept.
func (e *Emulator) ClearLog() {
	e.Lock()
	defer e.Unlock()
	e.Records = nil
	e.Bursts = nil
}

// Count returns how many times command c was received.
func (e *Emulator) Count(c byte) int {
	e.Lock()
	defer e.Unlock()
	n := 0
	for _, r := range e.Records {
		if r.Cmd == c {
			n++
		}
	}
	return n
}

// Cursor returns the cursor address and autoincrement direction opcode.
func (e *Emulator) Cursor() (uint16, byte) {
	e.Lock()
	defer e.Unlock()
	return e.cursor, e.dir
}

// Display reports whether the display is on and its attribute byte.
func (e *Emulator) Display() (bool, byte) {
	e.Lock()
	defer e.Unlock()
	return e.on, e.attr
}

// Asleep reports whether the last command was SLEEP IN.
func (e *Emulator) Asleep() bool {
	e.Lock()
	defer e.Unlock()
	return e.asleep
}

// Size returns the panel size programmed with SYSTEM SET.
func (e *Emulator) Size() image.Point {
	e.Lock()
	defer e.Unlock()
	return image.Point{X: e.bytesPerLine * 8, Y: e.lines}
}

// TextMemory returns a copy of the text layer, starting at SAD1.
func (e *Emulator) TextMemory() []byte {
	e.Lock()
	defer e.Unlock()
	n := e.bytesPerLine * (e.lines / 8)
	return e.copyMem(e.sad1, n)
}

// GraphicsMemory returns a copy of the graphics layer, starting at SAD2.
func (e *Emulator) GraphicsMemory() []byte {
	e.Lock()
	defer e.Unlock()
	return e.copyMem(e.sad2, e.bytesPerLine*e.lines)
}

// Graphics returns the graphics layer as seen on the panel.
func (e *Emulator) Graphics() *bitplane.HorizontalMSB {
	e.Lock()
	defer e.Unlock()
	img := bitplane.NewHorizontalMSB(image.Rect(0, 0, e.bytesPerLine*8, e.lines))
	copy(img.Pix, e.copyMem(e.sad2, len(img.Pix)))
	return img
}

// Glyph returns the CG RAM bitmap of a character code.
func (e *Emulator) Glyph(code byte) [8]byte {
	e.Lock()
	defer e.Unlock()
	var g [8]byte
	copy(g[:], e.copyMem(e.sag+uint16(code)*8, 8))
	return g
}

// Composition returns the OVLAY parameter and the horizontal dot scroll.
func (e *Emulator) Composition() (byte, byte) {
	e.Lock()
	defer e.Unlock()
	return e.overlay, e.hdot
}

func (e *Emulator) param(c byte, i int, v byte) {
	switch c {
	case MWrite:
		e.Mem[e.cursor] = v
		b := &e.Bursts[len(e.Bursts)-1]
		b.Data = append(b.Data, v)
		e.advance()
	case CSRW:
		if i == 0 {
			e.cursor = e.cursor&0xff00 | uint16(v)
		} else if i == 1 {
			e.cursor = e.cursor&0x00ff | uint16(v)<<8
		}
	case SystemSet:
		switch i {
		case 3:
			e.bytesPerLine = int(v) + 1
		case 5:
			e.lines = int(v) + 1
		case 6:
			e.pitch = e.pitch&0xff00 | int(v)
		case 7:
			e.pitch = e.pitch&0x00ff | int(v)<<8
		}
	case Scroll:
		switch i {
		case 0:
			e.sad1 = e.sad1&0xff00 | uint16(v)
		case 1:
			e.sad1 = e.sad1&0x00ff | uint16(v)<<8
		case 3:
			e.sad2 = e.sad2&0xff00 | uint16(v)
		case 4:
			e.sad2 = e.sad2&0x00ff | uint16(v)<<8
		}
	case CGRAMAdr:
		if i == 0 {
			e.sag = e.sag&0xff00 | uint16(v)
		} else if i == 1 {
			e.sag = e.sag&0x00ff | uint16(v)<<8
		}
	case DisplayOn, DisplayOff:
		if i == 0 {
			e.attr = v
		}
	case Overlay:
		if i == 0 {
			e.overlay = v
		}
	case HDotScr:
		if i == 0 {
			e.hdot = v
		}
	}
}

func (e *Emulator) advance() {
	switch e.dir {
	case CSRDirL:
		e.cursor--
	case CSRDirU:
		e.cursor -= uint16(e.pitch)
	case CSRDirD:
		e.cursor += uint16(e.pitch)
	default:
		e.cursor++
	}
}

// copyMem copies n bytes starting at addr, wrapping at the end of memory
// like the address counter does.
func (e *Emulator) copyMem(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = e.Mem[addr+uint16(i)]
	}
	return out
}

func (e *Emulator) String() string {
	return "ra8835test.Emulator"
}
