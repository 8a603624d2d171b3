// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ra8835 controls graphic LCD panels driven by the RAiO RA8835
// (Epson SED1335, S1D13305) controller over its 8 bit parallel interface.
//
// The controller memory holds two layers: a text layer with one character
// code per 8x8 cell at address 0, and a graphics layer with one bit per pixel
// right after it. Both are shown combined.
//
// The controller is write only from the driver's point of view: every call
// sends a burst (cursor address, autoincrement direction, memory write) and
// nothing is read back nor cached. Pixel writes replace the whole byte
// holding the pixel.
//
// Panels mounted upside down are handled by mirroring addresses, reversing
// the bits of bitmaps and uploading flipped glyphs to CG RAM.
//
// # Wiring
//
// Connect D0..D7 to a gpio.Group and A0, /WR, /RD, /CS and /RES to GPIO
// outputs, see NewParallelBus. /RD, /CS and /RES can be tied on the board.
// SEL1 and SEL2 must select the 8080 interface.
//
// The data lines can also come from a 74HC595 on SPI, see package shiftreg,
// and package bridge drives a panel attached to a microcontroller over a
// serial port.
//
// # Datasheet
//
// https://www.raio.com.tw/data_raio/Datasheet/RA8835/RA8835A_DS_V16_Eng.pdf
package ra8835
