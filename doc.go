// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd is a container for graphic LCD drivers.
//
// See ra8835 for the RA8835 / SED1335 controller and lcdterm to preview a
// panel in the terminal.
package lcd
