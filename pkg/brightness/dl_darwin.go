package brightness

/*
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

typedef int (*set_brightness_fn)(uint32_t, float);
typedef int (*get_brightness_fn)(uint32_t, float *);
typedef double (*get_brightness_double_fn)(uint32_t);

static int call_set_brightness(void *fn, uint32_t display, float level) {
    return ((set_brightness_fn)fn)(display, level);
}

static int call_get_brightness(void *fn, uint32_t display, float *level) {
    return ((get_brightness_fn)fn)(display, level);
}

static double call_get_brightness_double(void *fn, uint32_t display) {
    return ((get_brightness_double_fn)fn)(display);
}

static const char *last_dl_error(void) {
    const char *err = dlerror();
    return err ? err : "unknown error";
}
*/
import "C"

import (
	"unsafe"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/bright/pkg/display"
)

type dlOpener struct{}

// NewOpener returns an Opener backed by dlopen(3).
func NewOpener() Opener {
	return dlOpener{}
}

func (dlOpener) Open(path string) (Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	logrus.WithField("path", path).Trace("dlopen")

	handle := C.dlopen(cpath, C.RTLD_LAZY)
	if handle == nil {
		return nil, pkgerrors.Errorf("dlopen %s: %s", path, C.GoString(C.last_dl_error()))
	}

	return &dlLibrary{handle: handle, path: path}, nil
}

type dlLibrary struct {
	handle unsafe.Pointer
	path   string
}

func (l *dlLibrary) lookup(symbol string) (unsafe.Pointer, error) {
	if l.handle == nil {
		return nil, pkgerrors.Errorf("library %s is closed", l.path)
	}

	csym := C.CString(symbol)
	defer C.free(unsafe.Pointer(csym))

	logrus.WithFields(logrus.Fields{
		"path":   l.path,
		"symbol": symbol,
	}).Trace("dlsym")

	// Clear any stale error so a NULL result can be told apart.
	C.dlerror()
	fn := C.dlsym(l.handle, csym)
	if fn == nil {
		return nil, pkgerrors.Errorf("dlsym %s in %s: %s", symbol, l.path, C.GoString(C.last_dl_error()))
	}

	return fn, nil
}

func (l *dlLibrary) Setter(symbol string) (SetterFunc, error) {
	fn, err := l.lookup(symbol)
	if err != nil {
		return nil, err
	}

	return func(id display.ID, level float32) int {
		return int(C.call_set_brightness(fn, C.uint32_t(id), C.float(level)))
	}, nil
}

func (l *dlLibrary) Getter(symbol string, style GetterStyle) (GetterFunc, error) {
	fn, err := l.lookup(symbol)
	if err != nil {
		return nil, err
	}

	switch style {
	case GetterOutParam:
		return func(id display.ID) (float32, int) {
			var level C.float
			ret := C.call_get_brightness(fn, C.uint32_t(id), &level)
			return float32(level), int(ret)
		}, nil
	case GetterReturnsDouble:
		return func(id display.ID) (float32, int) {
			return float32(C.call_get_brightness_double(fn, C.uint32_t(id))), 0
		}, nil
	default:
		return nil, pkgerrors.Errorf("unknown getter style %d for %s", style, symbol)
	}
}

func (l *dlLibrary) Close() error {
	if l.handle == nil {
		return nil
	}

	logrus.WithField("path", l.path).Trace("dlclose")

	ret := C.dlclose(l.handle)
	l.handle = nil
	if ret != 0 {
		return pkgerrors.Errorf("dlclose %s: %s", l.path, C.GoString(C.last_dl_error()))
	}

	return nil
}
