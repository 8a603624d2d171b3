// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdterm_test

import (
	"log"

	"github.com/GermanBionicSystems/lcd/lcdterm"
	"github.com/GermanBionicSystems/lcd/ra8835"
	"github.com/GermanBionicSystems/lcd/ra8835/ra8835test"
)

// Preview what an RA8835 panel would show, without the panel.
func Example() {
	emu := &ra8835test.Emulator{}
	dev, err := ra8835.New(emu, &ra8835.Opts{W: 64, H: 32})
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.DrawLine(0, 0, 63, 31); err != nil {
		log.Fatal(err)
	}
	term := lcdterm.New(&lcdterm.Opts{X: 64, Y: 32})
	defer term.Halt()
	if _, err := term.Write(emu.GraphicsMemory()); err != nil {
		log.Fatal(err)
	}
}
