// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package timer

// Clock extends the 32-bit DGT counter to a monotonic 64-bit nanosecond
// clock. At 6.75MHz the counter wraps every ~636 seconds, Nanotime must
// therefore be sampled at least once per wrap period.
type Clock struct {
	DGT *DGT

	last  uint32
	ticks uint64
}

// Nanotime returns the nanoseconds elapsed since the counter was enabled.
func (c *Clock) Nanotime() int64 {
	now := c.DGT.Count()
	c.ticks += uint64(now - c.last)
	c.last = now

	return int64(c.DGT.Duration(c.ticks))
}
