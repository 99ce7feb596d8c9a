//go:build !darwin

package brightness

import (
	pkgerrors "github.com/pkg/errors"
)

type unsupportedOpener struct{}

// NewOpener returns an Opener that fails every load outside macOS.
func NewOpener() Opener {
	return unsupportedOpener{}
}

func (unsupportedOpener) Open(path string) (Library, error) {
	return nil, pkgerrors.Wrapf(ErrUnsupported, "dlopen %s", path)
}
