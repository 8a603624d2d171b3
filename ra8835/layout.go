// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"fmt"
	"image"
)

const (
	// cgRAMBase is where the character generator bitmaps are uploaded.
	cgRAMBase = 0x7000
	// Character cells are 8x8 pixels.
	cellSize = 8
	// C/R is at most 0xEF per the datasheet.
	maxBytesPerLine = 240
	// L/F and SL fit in one byte.
	maxLines = 248
)

// Layout is the controller memory map derived from the panel size.
//
// The text region holds one byte per 8x8 character cell starting at address
// 0. The graphics region holds one bit per pixel and starts right after the
// text region.
type Layout struct {
	w, h int
}

// NewLayout returns the memory map of a w x h pixels panel.
//
// Both dimensions must be multiples of 8 and both regions must fit below
// the CG RAM.
func NewLayout(w, h int) (Layout, error) {
	if w <= 0 || w%cellSize != 0 || w/cellSize > maxBytesPerLine {
		return Layout{}, fmt.Errorf("ra8835: invalid width %d: %w", w, ErrInvalidSize)
	}
	if h <= 0 || h%cellSize != 0 || h > maxLines {
		return Layout{}, fmt.Errorf("ra8835: invalid height %d: %w", h, ErrInvalidSize)
	}
	l := Layout{w: w, h: h}
	if end := l.GraphicsBase() + l.GraphicsSize(); end > cgRAMBase {
		return Layout{}, fmt.Errorf("ra8835: %dx%d needs %d bytes of display memory, CG RAM starts at 0x%04X: %w", w, h, end, cgRAMBase, ErrInvalidSize)
	}
	return l, nil
}

// Bounds returns the panel size in pixels.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.w, l.h)
}

// BytesPerLine returns the number of bytes of one graphics line, which is
// also the number of character cells of one text row.
func (l Layout) BytesPerLine() int {
	return l.w / 8
}

// TextCols returns the number of character cells per text row.
func (l Layout) TextCols() int {
	return l.w / cellSize
}

// TextRows returns the number of text rows.
func (l Layout) TextRows() int {
	return l.h / cellSize
}

// TextSize returns the size of the text region in bytes.
func (l Layout) TextSize() int {
	return l.TextCols() * l.TextRows()
}

// GraphicsBase returns the first address of the graphics region.
func (l Layout) GraphicsBase() int {
	return l.TextSize()
}

// GraphicsSize returns the size of the graphics region in bytes.
func (l Layout) GraphicsSize() int {
	return l.h * l.BytesPerLine()
}

// TextAddress returns the address of the character cell (col, row).
//
// The result is undefined for cells outside the panel.
func (l Layout) TextAddress(col, row int) uint16 {
	return uint16(row*l.TextCols() + col)
}

// PixelAddress is the location of a pixel in the graphics region.
type PixelAddress struct {
	// Addr is the display memory address of the byte holding the pixel.
	Addr uint16
	// Bit is the pixel index within the byte, 0 being the most significant
	// bit and the leftmost pixel.
	Bit uint8
}

// Mask returns the byte value lighting only this pixel.
func (p PixelAddress) Mask() byte {
	return 0x80 >> p.Bit
}

// PixelAddress returns the location of pixel (x, y).
//
// The result is undefined for pixels outside the panel.
func (l Layout) PixelAddress(x, y int) PixelAddress {
	return PixelAddress{
		Addr: uint16(l.GraphicsBase() + l.pixelOffset(x, y)),
		Bit:  uint8(x % 8),
	}
}

// pixelOffset returns the offset of the byte holding (x, y) within the
// graphics region.
func (l Layout) pixelOffset(x, y int) int {
	return y*l.BytesPerLine() + x/8
}

func (l Layout) validCell(col, row int) bool {
	return col >= 0 && col < l.TextCols() && row >= 0 && row < l.TextRows()
}

func (l Layout) validPixel(x, y int) bool {
	return x >= 0 && x < l.w && y >= 0 && y < l.h
}
