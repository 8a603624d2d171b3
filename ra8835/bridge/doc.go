// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bridge drives an RA8835 panel through a microcontroller attached
// to a serial port.
//
// The microcontroller owns the parallel bus and replays frames received on
// its UART:
//
//	0x01 c          command byte c, A0 high
//	0x02 n d1..dn   n data bytes (1 to 255), A0 low
//	0x03            pulse /RES
//
// Frames are written back to back, nothing is ever read back.
package bridge
