// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package timer implements initialization of the APQ8060 Debug Timer (DGT).
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/usbarmory/apq-touchpad/internal/reg"
)

// DGT registers
const (
	MSM_TMR_BASE = 0x02000000
	MSM_DGT_BASE = MSM_TMR_BASE + 0x24

	DGT_MATCH_VAL = 0x00
	DGT_COUNT_VAL = 0x04
	DGT_ENABLE    = 0x08
	DGT_CLEAR     = 0x0c
	DGT_CLK_CTL   = 0x10

	DGT_ENABLE_EN = 0
)

// The DGT is clocked by the LPXO.
const LPXO_FREQ = 27000000 // 27MHz

// DGT_CLK_CTL divider codes
const (
	DIV_1 = 0
	DIV_2 = 1
	DIV_3 = 2
	DIV_4 = 3
)

var (
	ErrNotInitialized = errors.New("timer not initialized")
	ErrInvalidDivider = errors.New("invalid divider code")
)

// DGT represents the Debug Timer instance.
type DGT struct {
	// Bus is the register space hosting the timer
	Bus reg.Bus
	// Base is the DGT register base address
	Base uint32
	// Divider is the DGT_CLK_CTL divider code
	Divider uint32
	// Freq is the input clock frequency in Hz
	Freq uint32

	ticksPerSec uint32
}

// Validate checks that the divider is a valid DGT_CLK_CTL code.
func (t *DGT) Validate() error {
	if t.Divider > DIV_4 {
		return fmt.Errorf("%w: %d", ErrInvalidDivider, t.Divider)
	}

	return nil
}

// Init disables the timer, programs its clock divider and records the
// resulting tick rate.
func (t *DGT) Init() {
	if t.Base == 0 {
		t.Base = MSM_DGT_BASE
	}

	if t.Freq == 0 {
		t.Freq = LPXO_FREQ
	}

	t.Bus.Write32(t.Base+DGT_ENABLE, 0)
	t.Bus.Write32(t.Base+DGT_CLK_CTL, t.Divider)

	t.ticksPerSec = t.Freq / (t.Divider + 1)
}

// TickRate returns the timer ticks per second.
func (t *DGT) TickRate() (uint32, error) {
	if t.ticksPerSec == 0 {
		return 0, ErrNotInitialized
	}

	return t.ticksPerSec, nil
}

// Enable starts the counter from zero.
func (t *DGT) Enable() {
	t.Bus.Write32(t.Base+DGT_CLEAR, 0)
	reg.Set(t.Bus, t.Base+DGT_ENABLE, DGT_ENABLE_EN)
}

// Count returns the current counter value.
func (t *DGT) Count() uint32 {
	return t.Bus.Read32(t.Base + DGT_COUNT_VAL)
}

// Duration converts a tick count to time.Duration.
func (t *DGT) Duration(ticks uint64) time.Duration {
	if t.ticksPerSec == 0 {
		return 0
	}

	sec := ticks / uint64(t.ticksPerSec)
	rem := ticks % uint64(t.ticksPerSec)

	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/uint64(t.ticksPerSec))
}
