// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

// GlyphTable provides the 8x8 bitmaps uploaded to CG RAM.
type GlyphTable interface {
	// Glyph returns the 8 rows of a character, top row first, bit 7 being the
	// leftmost pixel.
	Glyph(code byte) [8]byte
}

// BitmapFont is a GlyphTable laid out as 8 consecutive bytes per character,
// starting with code 0. Characters past the end of the slice are blank.
type BitmapFont []byte

// Glyph implements GlyphTable.
func (f BitmapFont) Glyph(code byte) [8]byte {
	var g [8]byte
	if i := int(code) * 8; i < len(f) {
		copy(g[:], f[i:])
	}
	return g
}

// cgRAMImage returns the content of CG RAM for all 256 codes.
func cgRAMImage(g GlyphTable, o orientation) []byte {
	p := make([]byte, 0, 256*8)
	for c := range 256 {
		rows := o.glyph(g.Glyph(byte(c)))
		p = append(p, rows[:]...)
	}
	return p
}
