// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdterm implements a monochrome display.Drawer that outputs to the
// terminal (stdout) using ANSI color codes.
//
// Useful to preview what a graphic LCD shows before the panel is wired.
package lcdterm

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/lcd/ra8835/bitplane"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	X, Y    int
	Palette *ansi256.Palette
	// On and Off are the colors of lit and dark pixels. A fully transparent
	// color, like the zero value, selects the blue on green STN panel
	// default.
	On, Off color.NRGBA

	_ struct{}
}

var (
	defaultOn  = color.NRGBA{R: 0x20, G: 0x28, B: 0x60, A: 255}
	defaultOff = color.NRGBA{R: 0x98, G: 0xC0, B: 0x40, A: 255}
)

// Dev is a graphic LCD emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	on, off string

	pixels *bitplane.HorizontalMSB
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes the ANSI sequences to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on.A == 0 {
		on = defaultOn
	}
	if off.A == 0 {
		off = defaultOff
	}
	return &Dev{
		w:      w,
		on:     p.Block(on),
		off:    p.Block(off),
		pixels: bitplane.NewHorizontalMSB(image.Rect(0, 0, opts.X, opts.Y)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("LCDTerm{%dx%d}", d.pixels.Rect.Dx(), d.pixels.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write accepts a full frame of packed pixels, 8 per byte with the leftmost
// in bit 7, and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.pixels.Pix) {
		return 0, fmt.Errorf("lcdterm: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.pixels.Pix), len(pixels))
	}
	copy(d.pixels.Pix, pixels)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.pixels.Rect
}

// Draw implements display.Drawer.
//
// Pixels outside r are kept from the previous frame.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	delta := sp.Sub(r.Min)
	r = r.Intersect(d.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.pixels.Set(x, y, src.At(x+delta.X, y+delta.Y))
		}
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H\033[0m")
	r := d.pixels.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if d.pixels.BitAt(x, y) {
				_, _ = d.buf.WriteString(d.on)
			} else {
				_, _ = d.buf.WriteString(d.off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
