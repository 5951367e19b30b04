// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	_ "unsafe"

	"github.com/usbarmory/tamago/arm"

	"github.com/usbarmory/apq-touchpad/internal/timer"
	"github.com/usbarmory/apq-touchpad/internal/uart"
)

// ARM is the Scorpion core, an ARMv7-A implementation.
var ARM = &arm.CPU{}

// runtime clock, ticking once the DGT is enabled
var clock timer.Clock

// serial console, nil unless enabled
var console *uart.UART

// runtime entropy, the APQ8060 PRNG is not driven and the output of
// getRandomData (and therefore crypto/rand) is predictable
var seed uint32

// hwinit takes care of the lower level initialization triggered early in
// runtime setup.
//
//go:linkname hwinit runtime.hwinit
func hwinit() {
	ARM.Init(ramStart)
	ARM.EnableVFP()

	// MMU initialization is required to take advantage of data cache
	ARM.InitMMU()
	ARM.EnableCache()
}

//go:linkname printk runtime.printk
func printk(c byte) {
	if console == nil {
		return
	}

	if c == '\n' {
		console.Tx('\r')
	}

	console.Tx(c)
}

//go:linkname nanotime1 runtime.nanotime1
func nanotime1() int64 {
	if clock.DGT == nil {
		return 0
	}

	return clock.Nanotime()
}

//go:linkname initRNG runtime.initRNG
func initRNG() {
	seed = 0x9e3779b9
}

//go:linkname getRandomData runtime.getRandomData
func getRandomData(b []byte) {
	for i := range b {
		if clock.DGT != nil {
			seed ^= clock.DGT.Count()
		}

		// xorshift32
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5

		b[i] = byte(seed)
	}
}
