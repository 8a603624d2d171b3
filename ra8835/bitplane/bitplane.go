// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitplane

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// HorizontalMSB is a 1 bit image where each byte holds 8 horizontally
// adjacent pixels, bit 7 being the leftmost one.
type HorizontalMSB struct {
	// Pix holds the image's pixels, Stride bytes per row.
	Pix []byte
	// Stride is the number of bytes per row, (width+7)/8.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewHorizontalMSB returns an initialized HorizontalMSB instance, all pixels
// being off.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalMSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &HorizontalMSB{Pix: make([]byte, stride*h), Stride: stride, Rect: r}
}

// ColorModel implements image.Image.
func (i *HorizontalMSB) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (i *HorizontalMSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *HorizontalMSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At().
func (i *HorizontalMSB) BitAt(x, y int) image1bit.Bit {
	if !(image.Point{x, y}.In(i.Rect)) {
		return image1bit.Off
	}
	offset, mask := i.PixOffset(x, y)
	return image1bit.Bit(i.Pix[offset]&mask != 0)
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (i *HorizontalMSB) Opaque() bool {
	return true
}

// PixOffset returns the index of the byte holding (x, y) in Pix and the bit
// mask selecting it.
func (i *HorizontalMSB) PixOffset(x, y int) (int, byte) {
	dx := x - i.Rect.Min.X
	offset := (y-i.Rect.Min.Y)*i.Stride + dx/8
	return offset, 0x80 >> uint(dx&7)
}

// Set implements draw.Image.
func (i *HorizontalMSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit is the optimized version of Set().
func (i *HorizontalMSB) SetBit(x, y int, b image1bit.Bit) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	offset, mask := i.PixOffset(x, y)
	if b {
		i.Pix[offset] |= mask
	} else {
		i.Pix[offset] &^= mask
	}
}

// SubImage returns an image representing the portion of the image i visible
// through r. The returned value shares pixels with i only when r.Min.X is a
// multiple of 8 away from i.Rect.Min.X.
func (i *HorizontalMSB) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(i.Rect)
	if r.Empty() {
		return &HorizontalMSB{}
	}
	if (r.Min.X-i.Rect.Min.X)&7 != 0 {
		dst := NewHorizontalMSB(r)
		draw.Draw(dst, r, i, r.Min, draw.Src)
		return dst
	}
	offset, _ := i.PixOffset(r.Min.X, r.Min.Y)
	return &HorizontalMSB{Pix: i.Pix[offset:], Stride: i.Stride, Rect: r}
}

var _ draw.Image = &HorizontalMSB{}
