// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package display

import (
	"fmt"
)

// Console font cell, one blank column separates characters.
const (
	FONT_WIDTH  = 5
	FONT_HEIGHT = 12
)

// FBCon represents the framebuffer console state.
type FBCon struct {
	Config Config

	// Cols and Rows are the console size in character cells
	Cols uint32
	Rows uint32

	// X and Y are the cursor position in character cells
	X uint32
	Y uint32

	buf []byte
}

// Attach binds the console to the framebuffer memory in buf, described by
// conf, and clears it.
func (c *FBCon) Attach(buf []byte, conf *Config) (err error) {
	if err = conf.Validate(); err != nil {
		return
	}

	size := conf.Size()

	if uint64(len(buf)) < size {
		return fmt.Errorf("%w: %d bytes buffer for %d bytes framebuffer", ErrInvalidConfig, len(buf), size)
	}

	c.Config = *conf
	c.Cols = conf.Width / (FONT_WIDTH + 1)
	c.Rows = (conf.Height - 1) / FONT_HEIGHT
	c.buf = buf[:size]

	c.Clear()

	return
}

// Clear blanks the framebuffer and homes the cursor.
func (c *FBCon) Clear() {
	clear(c.buf)
	c.X = 0
	c.Y = 0
}

// Attached reports whether the console is bound to framebuffer memory.
func (c *FBCon) Attached() bool {
	return c.buf != nil
}
