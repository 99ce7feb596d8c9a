package brightness

import (
	"github.com/charlie0129/bright/pkg/display"
)

// GetterStyle describes the calling convention of a brightness getter symbol.
type GetterStyle int

const (
	// GetterOutParam is `int fn(uint32_t display, float *level)`.
	GetterOutParam GetterStyle = iota
	// GetterReturnsDouble is `double fn(uint32_t display)`.
	GetterReturnsDouble
)

// Framework is a private system framework that exposes brightness symbols.
type Framework struct {
	Name string
	// Paths are tried in order until one loads.
	Paths     []string
	SetSymbol string
	GetSymbol string
	GetStyle  GetterStyle
}

var (
	// DisplayServices is present on Apple Silicon and recent Intel Macs.
	DisplayServices = Framework{
		Name: "DisplayServices",
		Paths: []string{
			"/System/Library/PrivateFrameworks/DisplayServices.framework/DisplayServices",
		},
		SetSymbol: "DisplayServicesSetBrightness",
		GetSymbol: "DisplayServicesGetBrightness",
		GetStyle:  GetterOutParam,
	}

	CoreDisplay = Framework{
		Name: "CoreDisplay",
		Paths: []string{
			"/System/Library/PrivateFrameworks/CoreDisplay.framework/CoreDisplay",
			"/System/Library/PrivateFrameworks/CoreDisplay.framework/Versions/A/CoreDisplay",
		},
		SetSymbol: "CoreDisplay_Display_SetUserBrightness",
		GetSymbol: "CoreDisplay_Display_GetUserBrightness",
		GetStyle:  GetterReturnsDouble,
	}

	// DefaultFrameworks is the lookup order used by New.
	DefaultFrameworks = []Framework{DisplayServices, CoreDisplay}
)

// SetterFunc calls a resolved brightness setter and returns its status code.
type SetterFunc func(id display.ID, level float32) int

// GetterFunc calls a resolved brightness getter and returns the level
// together with its status code.
type GetterFunc func(id display.ID) (float32, int)

// Library is a dynamically loaded framework.
type Library interface {
	Setter(symbol string) (SetterFunc, error)
	Getter(symbol string, style GetterStyle) (GetterFunc, error)
	Close() error
}

// Opener loads libraries by path.
type Opener interface {
	Open(path string) (Library, error)
}

// Result describes a successful brightness call.
type Result struct {
	Display   display.ID `json:"display"`
	Level     float32    `json:"brightness"`
	Framework string     `json:"framework"`
}
