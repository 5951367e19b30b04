// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package display

import (
	"errors"
	"fmt"
	"log"

	"github.com/usbarmory/tamago/dma"
)

// Framebuffer is the Console backed by the panel framebuffer memory, which
// is removed from DMA allocation once set up.
type Framebuffer struct {
	FBCon

	region  *dma.Region
	started bool
}

func (fb *Framebuffer) Start() error {
	fb.started = true
	return nil
}

func (fb *Framebuffer) Setup(conf *Config) (err error) {
	if !fb.started {
		return errors.New("console not started")
	}

	if err = conf.Validate(); err != nil {
		return
	}

	size := int(conf.Size())

	if fb.region, err = dma.NewRegion(uint(conf.Base), size, false); err != nil {
		return fmt.Errorf("framebuffer region, %v", err)
	}

	addr, buf := fb.region.Reserve(size, 0)

	if addr != uint(conf.Base) {
		return fmt.Errorf("framebuffer reserved at %#x, want %#x", addr, conf.Base)
	}

	if err = fb.Attach(buf, conf); err != nil {
		return
	}

	log.Printf("display: framebuffer %dx%d@%#x, console %dx%d", conf.Width, conf.Height, conf.Base, fb.Cols, fb.Rows)

	return
}
