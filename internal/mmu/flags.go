// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mmu

// Flags represents the memory type and access permission attributes of a
// first-level section descriptor (ARMv7 short-descriptor format).
type Flags uint32

// Memory types (TEX[14:12], C[3], B[2])
const (
	MEMORY_TYPE_STRONGLY_ORDERED              Flags = (0 << 12) | (0 << 3) | (0 << 2)
	MEMORY_TYPE_DEVICE_SHARED                 Flags = (0 << 12) | (0 << 3) | (1 << 2)
	MEMORY_TYPE_DEVICE_NON_SHARED             Flags = (2 << 12) | (0 << 3) | (0 << 2)
	MEMORY_TYPE_NORMAL                        Flags = (1 << 12) | (0 << 3) | (0 << 2)
	MEMORY_TYPE_NORMAL_WRITE_THROUGH          Flags = (0 << 12) | (1 << 3) | (0 << 2)
	MEMORY_TYPE_NORMAL_WRITE_BACK_NO_ALLOCATE Flags = (0 << 12) | (1 << 3) | (1 << 2)
	MEMORY_TYPE_NORMAL_WRITE_BACK_ALLOCATE    Flags = (1 << 12) | (1 << 3) | (1 << 2)
	memoryTypeMask                            Flags = (7 << 12) | (1 << 3) | (1 << 2)
)

// Access permissions (AP[2] at bit 15, AP[1:0] at bits 11:10)
const (
	MEMORY_AP_NO_ACCESS  Flags = (0 << 15) | (0 << 10)
	MEMORY_AP_READ_ONLY  Flags = (1 << 15) | (3 << 10)
	MEMORY_AP_READ_WRITE Flags = (0 << 15) | (3 << 10)
	accessMask           Flags = (1 << 15) | (3 << 10)
)

const (
	MEMORY_XN     Flags = 1 << 4
	MEMORY_SHARED Flags = 1 << 16
)

// Region attribute sets used by the platform memory map.
const (
	// Scratch region - cacheable, write through
	CACHEABLE_MEMORY = MEMORY_TYPE_NORMAL_WRITE_THROUGH | MEMORY_AP_READ_WRITE
	// Peripherals - non-shared device
	IOMAP_MEMORY = MEMORY_TYPE_DEVICE_NON_SHARED | MEMORY_AP_READ_WRITE
	// Default flat mapping - strongly ordered
	DEFAULT_MEMORY = MEMORY_TYPE_STRONGLY_ORDERED | MEMORY_AP_READ_WRITE
)

// attribute bits which may be set in Flags, all remaining bits belong to
// the descriptor type, domain and section base fields.
const validFlags = memoryTypeMask | accessMask | MEMORY_XN | MEMORY_SHARED

// Valid reports whether f only carries attribute bits.
func (f Flags) Valid() bool {
	return f&^validFlags == 0
}

// Type returns the memory type bits of f.
func (f Flags) Type() Flags {
	return f & memoryTypeMask
}

// Access returns the access permission bits of f.
func (f Flags) Access() Flags {
	return f & accessMask
}

func (f Flags) String() (s string) {
	switch f.Type() {
	case MEMORY_TYPE_STRONGLY_ORDERED:
		s = "strongly-ordered"
	case MEMORY_TYPE_DEVICE_SHARED:
		s = "device-shared"
	case MEMORY_TYPE_DEVICE_NON_SHARED:
		s = "device-non-shared"
	case MEMORY_TYPE_NORMAL:
		s = "normal"
	case MEMORY_TYPE_NORMAL_WRITE_THROUGH:
		s = "normal-write-through"
	case MEMORY_TYPE_NORMAL_WRITE_BACK_NO_ALLOCATE:
		s = "normal-write-back-no-allocate"
	case MEMORY_TYPE_NORMAL_WRITE_BACK_ALLOCATE:
		s = "normal-write-back-allocate"
	default:
		s = "unknown"
	}

	switch f.Access() {
	case MEMORY_AP_NO_ACCESS:
		s += ",none"
	case MEMORY_AP_READ_ONLY:
		s += ",ro"
	case MEMORY_AP_READ_WRITE:
		s += ",rw"
	default:
		s += ",ap?"
	}

	if f&MEMORY_XN != 0 {
		s += ",xn"
	}

	if f&MEMORY_SHARED != 0 {
		s += ",shared"
	}

	return
}
