// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"fmt"
)

// SetPixel lights pixel (x, y).
//
// The controller has no read-modify-write: the whole byte holding the pixel
// is written, turning off the 7 other pixels sharing it.
func (d *Dev) SetPixel(x, y int) error {
	if !d.l.validPixel(x, y) {
		return d.pixelRangeError(x, y)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setPixel(x, y)
}

// DrawLine draws a line from (x1, y1) to (x2, y2), both ends included.
//
// Lines closer to horizontal are written one byte per 8 pixels, one burst per
// display line they cross. Steeper lines are written one pixel at a time.
// Like SetPixel, it turns off the other pixels of every byte it touches.
func (d *Dev) DrawLine(x1, y1, x2, y2 int) error {
	if !d.l.validPixel(x1, y1) {
		return d.pixelRangeError(x1, y1)
	}
	if !d.l.validPixel(x2, y2) {
		return d.pixelRangeError(x2, y2)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line(x1, y1, x2, y2)
}

// WriteImage writes a full frame to the graphics layer in a single burst.
//
// buf holds rows of W/8 bytes, bit 7 being the leftmost pixel, as in
// bitplane.HorizontalMSB.Pix.
func (d *Dev) WriteImage(buf []byte) error {
	if len(buf) != d.l.GraphicsSize() {
		return fmt.Errorf("ra8835: invalid pixel stream length; expected %d bytes, got %d bytes: %w", d.l.GraphicsSize(), len(buf), ErrInvalidSize)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeGraphics(0, false, buf)
}

// ClearGraphics turns off every pixel of the graphics layer.
func (d *Dev) ClearGraphics() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearGraphics()
}

func (d *Dev) clearGraphics() error {
	b := burst{bus: d.bus}
	b.run(uint16(d.l.GraphicsBase()), Right, make([]byte, d.l.GraphicsSize()))
	return b.err
}

// writeGraphics writes p at offset in the graphics region, walking logical
// addresses down when leftward is set.
func (d *Dev) writeGraphics(offset int, leftward bool, p []byte) error {
	b := burst{bus: d.bus}
	b.run(d.o.graphicsAddress(offset), d.o.direction(leftward), d.o.bitmap(p))
	return b.err
}

func (d *Dev) setPixel(x, y int) error {
	a := d.l.PixelAddress(x, y)
	return d.writeGraphics(d.l.pixelOffset(x, y), false, []byte{a.Mask()})
}

func (d *Dev) line(x1, y1, x2, y2 int) error {
	dx, dy := 1, 1
	if x2 < x1 {
		dx = -1
	}
	if y2 < y1 {
		dy = -1
	}
	lengthX := abs(x2 - x1)
	lengthY := abs(y2 - y1)
	if lengthX == 0 && lengthY == 0 {
		return d.setPixel(x1, y1)
	}
	if lengthY <= lengthX {
		return d.shallowLine(x1, y1, dx, dy, lengthX, lengthY)
	}
	// Every pixel is on a different line, there is nothing to batch.
	x, y, e := x1, y1, -lengthY
	for range lengthY + 1 {
		if err := d.setPixel(x, y); err != nil {
			return err
		}
		y += dy
		e += 2 * lengthX
		if e > 0 {
			e -= 2 * lengthY
			x += dx
		}
	}
	return nil
}

// shallowLine runs Bresenham along x. Pixels falling in the same byte are
// merged in one mask and the masks of one display line go out in one burst,
// the cursor autoincrement following dx.
func (d *Dev) shallowLine(x, y, dx, dy, lengthX, lengthY int) error {
	var (
		run   []byte // masks of the current display line
		start int    // graphics offset of run[0]
		col   int    // byte column of the last mask
	)
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		err := d.writeGraphics(start, dx < 0, run)
		run = run[:0]
		return err
	}
	e := -lengthX
	for range lengthX + 1 {
		if len(run) == 0 {
			start = d.l.pixelOffset(x, y)
			col = x / 8
			run = append(run, 0)
		} else if x/8 != col {
			col = x / 8
			run = append(run, 0)
		}
		run[len(run)-1] |= 0x80 >> uint(x%8)
		x += dx
		e += 2 * lengthY
		if e > 0 {
			e -= 2 * lengthX
			y += dy
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (d *Dev) pixelRangeError(x, y int) error {
	return fmt.Errorf("ra8835: pixel (%d, %d) outside %s: %w", x, y, d.l.Bounds(), ErrOutOfRange)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
