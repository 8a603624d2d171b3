// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitplane implements a 1 bit per pixel image packed the way the
// RA8835 graphics layer is: rows of bytes, the most significant bit of each
// byte being the leftmost pixel.
//
// Pixels use the color type of periph.io/x/devices/v3/ssd1306/image1bit.
//
// The Pix slice of a HorizontalMSB image as large as the display can be sent
// verbatim with ra8835.Dev.WriteImage.
package bitplane
