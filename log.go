// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"log"
)

// initialized at compile time (see Makefile)
var Build string
var Revision string

// DebugUART enables the serial console when set to a true value
// (e.g. -ldflags "-X main.DebugUART=1").
var DebugUART string

func init() {
	log.SetFlags(0)
}
