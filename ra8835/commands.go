// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ra8835

import "fmt"

// Controller opcodes, written with A0 high.
const (
	cmdSystemSet  byte = 0x40
	cmdMWrite     byte = 0x42
	cmdMRead      byte = 0x43 // Unused, the driver never reads back.
	cmdScroll     byte = 0x44
	cmdCSRW       byte = 0x46
	cmdCSRR       byte = 0x47 // Unused, the driver never reads back.
	cmdSleepIn    byte = 0x53
	cmdDisplayOff byte = 0x58
	cmdDisplayOn  byte = 0x59
	cmdHDotScr    byte = 0x5A
	cmdOverlay    byte = 0x5B
	cmdCGRAMAdr   byte = 0x5C
	cmdCSRForm    byte = 0x5D
)

// Direction is the cursor autoincrement direction applied after every byte
// written with MWRITE. Its value is the CSRDIR opcode selecting it.
type Direction byte

// Autoincrement directions. Up and Down move by one address pitch (one
// display line).
const (
	Right Direction = 0x4C
	Left  Direction = 0x4D
	Up    Direction = 0x4E
	Down  Direction = 0x4F
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Left:
		return "Left"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return fmt.Sprintf("Direction(0x%02X)", byte(d))
	}
}

// OverlayMode selects how the text and graphics layers are combined.
type OverlayMode byte

// Layer composition, OVLAY MX1/MX0 bits.
const (
	OverlayOR         OverlayMode = 0x00
	OverlayXOR        OverlayMode = 0x01
	OverlayAND        OverlayMode = 0x02
	OverlayPriorityOR OverlayMode = 0x03
)

// DISP ON/OFF attribute bits.
const (
	attrCursorOn    byte = 0x01
	attrCursorFlash byte = 0x02
	attrCursorMask  byte = 0x03
	attrSAD1On      byte = 0x04
	attrSAD2On      byte = 0x10

	attrDefault = attrSAD1On | attrSAD2On
)

// CSRFORM parameters: P1 is the cursor width - 1, P2 holds CM (block) in
// bit 7 and the cursor height - 1.
var (
	cursorUnderline = [2]byte{0x04, 0x06}
	cursorBlock     = [2]byte{0x04, 0x86}
)
