// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package uart implements a minimal, transmit only, driver for the APQ8060
// GSBI UART_DM serial port used as debug console.
package uart

import (
	"errors"
	"fmt"

	"github.com/usbarmory/apq-touchpad/internal/reg"
)

// GSBI registers
const (
	GSBI_CTRL_REG = 0x00

	GSBI_PROTOCOL_CODE     = 4
	GSBI_PROTOCOL_I2C_UART = 0x6

	UART_DM_OFFSET = 0x40000
)

// UART_DM registers
const (
	UART_DM_MR1             = 0x00
	UART_DM_MR2             = 0x04
	UART_DM_CSR             = 0x08
	UART_DM_SR              = 0x08
	UART_DM_CR              = 0x10
	UART_DM_IMR             = 0x14
	UART_DM_IPR             = 0x18
	UART_DM_TFWR            = 0x1c
	UART_DM_RFWR            = 0x20
	UART_DM_HCR             = 0x24
	UART_DM_NO_CHARS_FOR_TX = 0x40
	UART_DM_TF              = 0x70

	SR_TXRDY = 2
	SR_TXEMT = 3
)

// UART_DM_CR commands
const (
	CR_RX_EN         = 1 << 0
	CR_TX_EN         = 1 << 2
	CR_RESET_RX      = 0x10
	CR_RESET_TX      = 0x20
	CR_RESET_ERR     = 0x30
	CR_RESET_BRK_INT = 0x40
	CR_RESET_STALE   = 0x80
)

const (
	// 8 bits, no parity, 1 stop bit
	MR2_8N1 = 0x34
	// 115200 baud at the default 1.8432MHz UART_DM clock
	CSR_115200 = 0xff
	// stale timeout, as reset value
	IPR_DEFAULT  = 0x1f
	RFWR_DEFAULT = 10
)

// GSBI instances
const (
	GSBI_MIN = 1
	GSBI_MAX = 12
)

var ErrInvalidGSBI = errors.New("invalid GSBI instance")

// GSBIBase returns the register base of GSBI instance id (1-12).
func GSBIBase(id int) uint32 {
	if id <= 7 {
		return 0x16000000 + uint32(id-1)<<20
	}

	return 0x19800000 + uint32(id-8)<<20
}

// UART represents a GSBI UART_DM instance.
type UART struct {
	Bus reg.Bus
	// GSBI is the serial block instance hosting the UART
	GSBI int

	gsbi uint32
	base uint32
}

// Validate checks that the hosting GSBI instance exists.
func (hw *UART) Validate() error {
	if hw.GSBI < GSBI_MIN || hw.GSBI > GSBI_MAX {
		return fmt.Errorf("%w: %d", ErrInvalidGSBI, hw.GSBI)
	}

	return nil
}

// Init selects the UART protocol on the GSBI block, resets the UART_DM
// core and enables it for 115200 8N1 operation.
func (hw *UART) Init() {
	hw.gsbi = GSBIBase(hw.GSBI)
	hw.base = hw.gsbi + UART_DM_OFFSET

	hw.Bus.Write32(hw.gsbi+GSBI_CTRL_REG, GSBI_PROTOCOL_I2C_UART<<GSBI_PROTOCOL_CODE)

	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RESET_RX)
	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RESET_TX)
	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RESET_ERR)
	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RESET_BRK_INT)
	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RESET_STALE)

	hw.Bus.Write32(hw.base+UART_DM_MR1, 0)
	hw.Bus.Write32(hw.base+UART_DM_MR2, MR2_8N1)
	hw.Bus.Write32(hw.base+UART_DM_CSR, CSR_115200)

	// polled operation
	hw.Bus.Write32(hw.base+UART_DM_IMR, 0)
	hw.Bus.Write32(hw.base+UART_DM_IPR, IPR_DEFAULT)
	hw.Bus.Write32(hw.base+UART_DM_TFWR, 0)
	hw.Bus.Write32(hw.base+UART_DM_RFWR, RFWR_DEFAULT)
	hw.Bus.Write32(hw.base+UART_DM_HCR, 0)

	hw.Bus.Write32(hw.base+UART_DM_CR, CR_RX_EN|CR_TX_EN)
}

// Base returns the UART_DM register base, valid after Init.
func (hw *UART) Base() uint32 {
	return hw.base
}

// Tx transmits a single character.
func (hw *UART) Tx(c byte) {
	reg.Wait(hw.Bus, hw.base+UART_DM_SR, SR_TXEMT, 1, 1)
	hw.Bus.Write32(hw.base+UART_DM_NO_CHARS_FOR_TX, 1)

	reg.Wait(hw.Bus, hw.base+UART_DM_SR, SR_TXRDY, 1, 1)
	hw.Bus.Write32(hw.base+UART_DM_TF, uint32(c))
}

// Write transmits the buffer, LF is sent as CRLF.
func (hw *UART) Write(buf []byte) (n int, err error) {
	for n = 0; n < len(buf); n++ {
		if buf[n] == '\n' {
			hw.Tx('\r')
		}

		hw.Tx(buf[n])
	}

	return
}
