package display

// #cgo LDFLAGS: -framework CoreGraphics
// #include <CoreGraphics/CoreGraphics.h>
import "C"

// MainDisplayID returns the identifier of the display that holds the menu bar.
func MainDisplayID() ID {
	return ID(C.CGMainDisplayID())
}
