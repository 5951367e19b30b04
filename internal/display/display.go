// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package display implements the one-time framebuffer console setup.
package display

import (
	"errors"
	"fmt"
)

// Format represents the framebuffer pixel format.
type Format int

const (
	FB_FORMAT_RGB565 Format = iota
	FB_FORMAT_RGB666
	FB_FORMAT_RGB666_LOOSE
	FB_FORMAT_RGB888
)

// Touchpad framebuffer, stride/format/bpp are not used by the panel
// controller and only describe the memory layout.
const (
	FB_BASE   = 0x7f600000
	FB_WIDTH  = 1024
	FB_HEIGHT = 768
	FB_STRIDE = 4
	FB_BPP    = 24
)

var ErrInvalidConfig = errors.New("invalid framebuffer configuration")

// Config represents a framebuffer console configuration.
type Config struct {
	Base   uint32
	Width  uint32
	Height uint32
	Stride uint32
	Format Format
	BPP    uint32
}

// DefaultConfig returns the Touchpad panel framebuffer configuration.
func DefaultConfig() Config {
	return Config{
		Base:   FB_BASE,
		Width:  FB_WIDTH,
		Height: FB_HEIGHT,
		Stride: FB_STRIDE,
		Format: FB_FORMAT_RGB888,
		BPP:    FB_BPP,
	}
}

// Size returns the framebuffer size in bytes.
func (c Config) Size() uint64 {
	return uint64(c.Width) * uint64(c.Height) * uint64(c.Stride)
}

// Validate checks that the configuration describes a non-empty framebuffer
// within the 32-bit address space.
func (c Config) Validate() error {
	switch {
	case c.Base == 0:
		return fmt.Errorf("%w: no base address", ErrInvalidConfig)
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Stride == 0:
		return fmt.Errorf("%w: zero stride", ErrInvalidConfig)
	case uint64(c.Base)+c.Size() > 1<<32:
		return fmt.Errorf("%w: %#x+%#x exceeds address space", ErrInvalidConfig, c.Base, c.Size())
	}

	return nil
}

// Console represents the graphics console backend.
type Console interface {
	// Start attaches the graphics console to the display.
	Start() error
	// Setup configures the console on the passed framebuffer.
	Setup(conf *Config) error
}

// Display represents the one-time framebuffer console initialization.
type Display struct {
	Console Console
	Config  Config

	done bool
}

// Init starts the console and sets up the framebuffer on first invocation,
// any subsequent invocation is a no-op.
func (d *Display) Init() (err error) {
	if d.done {
		return
	}

	d.done = true

	if err = d.Console.Start(); err != nil {
		return
	}

	return d.Console.Setup(&d.Config)
}

// Initialized reports whether Init has been invoked.
func (d *Display) Initialized() bool {
	return d.done
}
