// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/GermanBionicSystems/lcd/ra8835/bitplane"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	// ErrOutOfRange is returned for coordinates outside the panel.
	ErrOutOfRange = errors.New("ra8835: out of range")
	// ErrInvalidSize is returned for unsupported panel sizes and for buffers
	// not matching the graphics region.
	ErrInvalidSize = errors.New("ra8835: invalid size")
)

// DefaultOpts is a 320x240 panel mounted upright using the internal CG ROM.
var DefaultOpts = Opts{
	W: 320,
	H: 240,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the panel size in pixels, both multiples of 8.
	W int
	H int
	// UpsideDown is set when the panel is mounted rotated by 180°. Text cells
	// and pixels are then addressed from the opposite corner and bitmaps are
	// bit-reversed.
	UpsideDown bool
	// Glyphs is uploaded to CG RAM and used for the text layer. The internal
	// CG ROM is used when nil. Upside-down panels need a glyph table, the ROM
	// characters can't be rotated.
	Glyphs GlyphTable
}

// Dev is an open handle to the display controller.
//
// Every operation writes to the controller right away; nothing is cached.
type Dev struct {
	mu     sync.Mutex
	bus    Bus
	l      Layout
	o      orientation
	glyphs GlyphTable

	// DISP ON/OFF attribute and CSRFORM parameters last sent.
	attr byte
	form [2]byte
}

// New initializes the controller behind bus and returns a handle to it.
//
// The text layer is cleared to spaces and the graphics layer to zeros before
// the display is turned on.
func New(bus Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	l, err := NewLayout(opts.W, opts.H)
	if err != nil {
		return nil, err
	}
	d := &Dev{
		bus:    bus,
		l:      l,
		o:      orientation{l: l, flipped: opts.UpsideDown},
		glyphs: opts.Glyphs,
		attr:   attrDefault,
		form:   cursorBlock,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ra8835.Dev{%v, %s}", d.bus, d.l.Bounds().Max)
}

// Layout returns the controller memory map.
func (d *Dev) Layout() Layout {
	return d.l
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.l.Bounds()
}

// Draw implements display.Drawer.
//
// The graphics layer is updated synchronously. Writes are whole bytes: the
// pixels sharing a byte with r but outside of it are turned off. A full frame
// *bitplane.HorizontalMSB is sent as a single burst.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	clipped := r.Intersect(d.l.Bounds())
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	r = clipped
	if img, ok := src.(*bitplane.HorizontalMSB); ok && r == d.l.Bounds() && img.Rect == r && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, native encoding: fast path!
		return d.WriteImage(img.Pix)
	}
	x0 := r.Min.X &^ 7
	row := make([]byte, (r.Max.X-x0+7)/8)
	d.mu.Lock()
	defer d.mu.Unlock()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(row)
		sy := y - r.Min.Y + sp.Y
		for x := r.Min.X; x < r.Max.X; x++ {
			if image1bit.BitModel.Convert(src.At(x-r.Min.X+sp.X, sy)).(image1bit.Bit) {
				row[(x-x0)/8] |= 0x80 >> uint(x&7)
			}
		}
		if err := d.writeGraphics(d.l.pixelOffset(x0, y), false, row); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a full frame to the graphics layer.
//
// This function accepts the content of bitplane.HorizontalMSB.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.WriteImage(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Display turns the display on or off. Display memory is retained.
func (d *Dev) Display(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.display(on)
}

// Halt implements conn.Resource. It turns the display off.
//
// Sending Display(true) afterward reenables the display.
func (d *Dev) Halt() error {
	return d.Display(false)
}

// Sleep puts the controller in standby. Any command wakes it up again, the
// display memory is retained.
func (d *Dev) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.Command(cmdSleepIn)
}

// SetOverlay selects how the text layer is combined with the graphics layer.
func (d *Dev) SetOverlay(m OverlayMode) error {
	if m > OverlayPriorityOR {
		return fmt.Errorf("ra8835: invalid overlay mode %d", m)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b := burst{bus: d.bus}
	b.command(cmdOverlay, byte(m))
	return b.err
}

// SetHorizontalScroll shifts the whole display left by 0 to 7 pixels.
func (d *Dev) SetHorizontalScroll(dots int) error {
	if dots < 0 || dots > 7 {
		return fmt.Errorf("ra8835: horizontal scroll %d: %w", dots, ErrOutOfRange)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b := burst{bus: d.bus}
	b.command(cmdHDotScr, byte(dots))
	return b.err
}

func (d *Dev) display(on bool) error {
	c := cmdDisplayOff
	if on {
		c = cmdDisplayOn
	}
	b := burst{bus: d.bus}
	b.command(c, d.attr)
	return b.err
}

// setCursorShape sends CSRFORM and the cursor attribute bits. A nil form
// keeps the current shape.
func (d *Dev) setCursorShape(form *[2]byte, cursor byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if form != nil {
		d.form = *form
	}
	d.attr = d.attr&^attrCursorMask | cursor
	b := burst{bus: d.bus}
	b.command(cmdCSRForm, d.form[:]...)
	b.command(cmdDisplayOn, d.attr)
	return b.err
}

// init runs the power-up sequence.
//
// The text layer (SAD1) starts at 0 and the graphics layer (SAD2) right
// after it. CG RAM is at 0x7000.
func (d *Dev) init() error {
	if r, ok := d.bus.(Resetter); ok {
		if err := r.Reset(); err != nil {
			return err
		}
	}
	b := burst{bus: d.bus}
	b.command(cmdSystemSet, getSystemSet(d.l, d.glyphs != nil)...)
	b.command(cmdScroll, getScroll(d.l)...)
	b.command(cmdCSRForm, d.form[:]...)
	b.command(cmdHDotScr, 0x00)
	// OR composition, text mode, two layers.
	b.command(cmdOverlay, byte(OverlayOR))
	if d.glyphs != nil {
		// Uploaded in forward order, the glyphs are already flipped.
		b.run(cgRAMBase, Right, cgRAMImage(d.glyphs, d.o))
	}
	b.command(cmdCGRAMAdr, byte(cgRAMBase&0xff), byte(cgRAMBase>>8))
	if b.err != nil {
		return b.err
	}
	if err := d.clearGraphics(); err != nil {
		return err
	}
	if err := d.fillText(' '); err != nil {
		return err
	}
	return d.display(true)
}

// getSystemSet returns the SYSTEM SET parameters.
func getSystemSet(l Layout, cgRAM bool) []byte {
	cr := l.BytesPerLine() - 1
	tcr := min(cr+8, 0xff)
	ap := l.BytesPerLine()
	p1 := byte(0x30) // IV=1, internal CG ROM, single panel, 8 pixel cells
	if cgRAM {
		p1 |= 0x01 // M0: characters come from CG RAM
	}
	return []byte{
		p1,
		0x87,          // WF=1 two-frame AC drive, FX=7
		cellSize - 1,  // FY
		byte(cr),      // C/R, bytes per display line
		byte(tcr),     // TC/R, line length including blanking
		byte(l.h - 1), // L/F, lines per frame
		byte(ap),      // APL, address pitch
		byte(ap >> 8), // APH
	}
}

// getScroll returns the SCROLL parameters: SAD1 (text), SL1, SAD2
// (graphics), SL2, SAD3 and SAD4.
func getScroll(l Layout) []byte {
	sad2 := l.GraphicsBase()
	return []byte{
		0x00, 0x00,
		byte(l.h),
		byte(sad2), byte(sad2 >> 8),
		byte(l.h),
		0x00, 0x00,
		0x00, 0x00,
	}
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
