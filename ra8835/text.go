// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import (
	"bytes"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// SetTextCursor moves the controller cursor to character cell (col, row).
// The next MWRITE, for example Text.Write, starts there.
func (d *Dev) SetTextCursor(col, row int) error {
	if !d.l.validCell(col, row) {
		return d.cellRangeError(col, row)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b := burst{bus: d.bus}
	b.setCursor(d.o.textAddress(col, row))
	b.direction(d.o.direction(false))
	return b.err
}

// WriteChar writes one character code at cell (col, row).
func (d *Dev) WriteChar(col, row int, code byte) error {
	return d.WriteString(col, row, []byte{code})
}

// WriteString writes character codes starting at cell (col, row) in a single
// burst.
//
// The controller doesn't know about rows: a string longer than the rest of
// the row continues at the start of the next one. A string that would run
// past the last cell is rejected, it would overwrite the graphics layer.
func (d *Dev) WriteString(col, row int, codes []byte) error {
	if !d.l.validCell(col, row) {
		return d.cellRangeError(col, row)
	}
	if end := int(d.l.TextAddress(col, row)) + len(codes); end > d.l.TextSize() {
		return fmt.Errorf("ra8835: %d characters at (%d, %d) overflow the text layer by %d: %w", len(codes), col, row, end-d.l.TextSize(), ErrOutOfRange)
	}
	if len(codes) == 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b := burst{bus: d.bus}
	b.run(d.o.textAddress(col, row), d.o.direction(false), codes)
	return b.err
}

// ClearText fills the text layer with spaces.
func (d *Dev) ClearText() error {
	return d.FillText(' ')
}

// FillText fills every cell of the text layer with code.
//
// The fill always starts at address 0 going right; the panel orientation
// doesn't matter since every cell gets the same value.
func (d *Dev) FillText(code byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fillText(code)
}

func (d *Dev) fillText(code byte) error {
	b := burst{bus: d.bus}
	b.run(0, Right, bytes.Repeat([]byte{code}, d.l.TextSize()))
	return b.err
}

func (d *Dev) cellRangeError(col, row int) error {
	return fmt.Errorf("ra8835: cell (%d, %d) outside %dx%d: %w", col, row, d.l.TextCols(), d.l.TextRows(), ErrOutOfRange)
}

// Text returns the text layer as a display.TextDisplay.
func (d *Dev) Text() *Text {
	return &Text{d: d}
}

// Text is the text layer of a Dev. It implements display.TextDisplay.
//
// Rows and columns start at 0. Text keeps track of the cursor position
// itself, the controller's cursor is never read back.
type Text struct {
	d        *Dev
	row, col int
}

// AutoScroll is not supported by this device. Returns display.ErrNotImplemented
func (t *Text) AutoScroll(enabled bool) error {
	return fmt.Errorf("ra8835: %w", display.ErrNotImplemented)
}

// Clear fills the text layer with spaces and moves the cursor home.
func (t *Text) Clear() error {
	if err := t.d.ClearText(); err != nil {
		return err
	}
	return t.Home()
}

// Cols returns the number of character cells per row.
func (t *Text) Cols() int {
	return t.d.l.TextCols()
}

// Rows returns the number of text rows.
func (t *Text) Rows() int {
	return t.d.l.TextRows()
}

// MinCol returns the min column position.
func (t *Text) MinCol() int {
	return 0
}

// MinRow returns the min row position.
func (t *Text) MinRow() int {
	return 0
}

// Cursor sets the cursor mode. You can pass multiple arguments.
// Cursor(CursorBlock, CursorBlink)
func (t *Text) Cursor(modes ...display.CursorMode) error {
	var form *[2]byte
	var cursor byte
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor = 0
		case display.CursorUnderline:
			form = &cursorUnderline
			cursor |= attrCursorOn
		case display.CursorBlock:
			form = &cursorBlock
			cursor |= attrCursorOn
		case display.CursorBlink:
			cursor = cursor&^attrCursorOn | attrCursorFlash
		default:
			return fmt.Errorf("ra8835: unexpected cursor: %d", mode)
		}
	}
	return t.d.setCursorShape(form, cursor)
}

// Home moves the cursor to (0, 0).
func (t *Text) Home() error {
	return t.MoveTo(0, 0)
}

// Move moves the cursor one cell. Forward and Backward wrap across rows.
func (t *Text) Move(dir display.CursorDirection) error {
	row, col := t.row, t.col
	switch dir {
	case display.Forward:
		row, col = t.cell(t.linear() + 1)
	case display.Backward:
		row, col = t.cell(t.linear() - 1)
	case display.Up:
		row--
	case display.Down:
		row++
	default:
		return fmt.Errorf("ra8835: %w", display.ErrNotImplemented)
	}
	return t.MoveTo(row, col)
}

// MoveTo moves the cursor to an arbitrary position.
func (t *Text) MoveTo(row, col int) error {
	if err := t.d.SetTextCursor(col, row); err != nil {
		return err
	}
	t.row, t.col = row, col
	return nil
}

// Display turns the display on or off.
func (t *Text) Display(on bool) error {
	return t.d.Display(on)
}

// Write writes characters at the cursor position and advances it.
//
// Filling the last cell moves the cursor past the end of the text layer, so
// any further write fails with ErrOutOfRange until the cursor is moved.
func (t *Text) Write(p []byte) (int, error) {
	if err := t.d.WriteString(t.col, t.row, p); err != nil {
		return 0, err
	}
	t.row, t.col = t.cell(t.linear() + len(p))
	return len(p), nil
}

// WriteString writes a string output to the display.
func (t *Text) WriteString(text string) (int, error) {
	return t.Write([]byte(text))
}

// Halt implements conn.Resource. It turns the display off.
func (t *Text) Halt() error {
	return t.d.Halt()
}

func (t *Text) String() string {
	return fmt.Sprintf("ra8835.Text{%dx%d}", t.Cols(), t.Rows())
}

// linear returns the cell index of the cursor.
func (t *Text) linear() int {
	return t.row*t.d.l.TextCols() + t.col
}

func (t *Text) cell(i int) (row, col int) {
	cols := t.d.l.TextCols()
	if i < 0 {
		return -1, 0
	}
	return i / cols, i % cols
}

var _ display.TextDisplay = &Text{}
var _ conn.Resource = &Text{}
