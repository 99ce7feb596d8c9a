// Package display identifies physical displays through the OS graphics
// subsystem.
package display

import "strconv"

// ID is an opaque display handle assigned by CoreGraphics (CGDirectDisplayID).
type ID uint32

func (i ID) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
