// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitplane

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestSet(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   color.Color
		want image1bit.Bit
	}{
		{"bit on", image1bit.On, image1bit.On},
		{"bit off", image1bit.Off, image1bit.Off},
		{"white", color.White, image1bit.On},
		{"black", color.Black, image1bit.Off},
		{"dark gray", color.Gray{Y: 0x40}, image1bit.Off},
		{"light gray", color.Gray{Y: 0xC0}, image1bit.On},
		{"red", color.RGBA{R: 0xff, A: 0xff}, image1bit.On},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := NewHorizontalMSB(image.Rect(0, 0, 8, 1))
			img.Set(3, 0, tc.in)
			if got := img.BitAt(3, 0); got != tc.want {
				t.Errorf("Set(%v) stored %v, want %v", tc.in, got, tc.want)
			}
			if got := img.At(3, 0); got != color.Color(tc.want) {
				t.Errorf("At() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewHorizontalMSB(t *testing.T) {
	for _, tc := range []struct {
		rect       image.Rectangle
		wantStride int
		wantLen    int
	}{
		{image.Rect(0, 0, 320, 240), 40, 40 * 240},
		{image.Rect(0, 0, 9, 2), 2, 4},
		{image.Rect(4, 4, 12, 5), 1, 1},
		{image.Rect(0, 0, 0, 0), 0, 0},
	} {
		img := NewHorizontalMSB(tc.rect)
		if img.Stride != tc.wantStride {
			t.Errorf("%v: Stride = %d, want %d", tc.rect, img.Stride, tc.wantStride)
		}
		if len(img.Pix) != tc.wantLen {
			t.Errorf("%v: len(Pix) = %d, want %d", tc.rect, len(img.Pix), tc.wantLen)
		}
	}
}

func TestSetBitPacking(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 16, 2))
	img.SetBit(0, 0, image1bit.On)
	img.SetBit(7, 0, image1bit.On)
	img.SetBit(8, 1, image1bit.On)
	img.SetBit(15, 1, image1bit.On)
	img.SetBit(16, 1, image1bit.On) // outside, ignored
	want := []byte{0x81, 0x00, 0x00, 0x81}
	if diff := cmp.Diff(img.Pix, want); diff != "" {
		t.Errorf("Pix difference (-got +want):\n%s", diff)
	}
	if img.BitAt(7, 0) != image1bit.On || img.BitAt(6, 0) != image1bit.Off {
		t.Error("BitAt() mismatch")
	}
	img.SetBit(7, 0, image1bit.Off)
	if img.Pix[0] != 0x80 {
		t.Errorf("Pix[0] = %#x, want 0x80", img.Pix[0])
	}
}

func TestPixOffset(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 320, 240))
	offset, mask := img.PixOffset(19, 2)
	if offset != 2*40+2 || mask != 0x10 {
		t.Errorf("PixOffset(19, 2) = (%d, %#x), want (82, 0x10)", offset, mask)
	}
}

func TestSubImage(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 32, 4))
	img.SetBit(9, 1, image1bit.On)
	sub := img.SubImage(image.Rect(8, 1, 16, 2)).(*HorizontalMSB)
	if sub.BitAt(9, 1) != image1bit.On {
		t.Error("aligned SubImage lost pixel")
	}
	sub.SetBit(10, 1, image1bit.On)
	if img.BitAt(10, 1) != image1bit.On {
		t.Error("aligned SubImage must share pixels")
	}
	unaligned := img.SubImage(image.Rect(3, 1, 12, 2)).(*HorizontalMSB)
	if unaligned.BitAt(9, 1) != image1bit.On || unaligned.BitAt(4, 1) != image1bit.Off {
		t.Error("unaligned SubImage content mismatch")
	}
}

func TestDrawText(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 64, 16))
	draw.Draw(img, img.Bounds(), &image.Uniform{image1bit.Off}, image.Point{}, draw.Src)
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: f,
		Dot:  fixed.P(0, img.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hi")
	lit := 0
	for _, b := range img.Pix {
		for ; b != 0; b &= b - 1 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("DrawString() lit no pixel")
	}
	for x := 16; x < 64; x++ {
		for y := 0; y < 16; y++ {
			if img.BitAt(x, y) != image1bit.Off {
				t.Fatalf("pixel (%d, %d) lit past the text", x, y)
			}
		}
	}
}
