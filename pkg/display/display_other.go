//go:build !darwin

package display

// MainDisplayID returns 0 on platforms without CoreGraphics.
func MainDisplayID() ID {
	return 0
}
