// Package brightness sets and reads the brightness of the main display
// through private macOS frameworks resolved at runtime.
package brightness

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/bright/pkg/display"
)

// Controller tries each framework in order until one exposes the symbol it
// needs. Libraries are loaded per call and unloaded before the call returns.
type Controller struct {
	opener      Opener
	mainDisplay func() display.ID
	frameworks  []Framework
}

// New returns a Controller that uses dlopen and DefaultFrameworks.
func New() *Controller {
	return NewWithOpener(NewOpener(), DefaultFrameworks)
}

// NewWithOpener returns a Controller that loads frameworks through opener.
func NewWithOpener(opener Opener, frameworks []Framework) *Controller {
	return &Controller{
		opener:      opener,
		mainDisplay: display.MainDisplayID,
		frameworks:  frameworks,
	}
}

// attemptFunc resolves what it needs from lib. It reports resolved=false
// when the symbol is missing so that the next framework is tried.
type attemptFunc func(fw Framework, lib Library) (resolved bool, err error)

func (c *Controller) withFramework(attempt attemptFunc) error {
	for _, fw := range c.frameworks {
		for _, path := range fw.Paths {
			lib, err := c.opener.Open(path)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"framework": fw.Name,
					"path":      path,
				}).WithError(err).Debug("Failed to load framework")
				continue
			}

			resolved, err := attempt(fw, lib)
			closeLibrary(fw, lib)
			if !resolved {
				// The library loaded but lacks the symbol. Other paths of
				// the same framework would hold the same binary.
				break
			}

			return err
		}
	}

	return ErrUnavailable
}

func closeLibrary(fw Framework, lib Library) {
	if err := lib.Close(); err != nil {
		logrus.WithField("framework", fw.Name).WithError(err).Warn("Failed to unload framework")
	}
}

// Set sets the brightness of the main display to level. No range checks are
// done here: the value is handed to the framework as is.
func (c *Controller) Set(level float32) (*Result, error) {
	id := c.mainDisplay()
	var res *Result

	err := c.withFramework(func(fw Framework, lib Library) (bool, error) {
		set, err := lib.Setter(fw.SetSymbol)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"framework": fw.Name,
				"symbol":    fw.SetSymbol,
			}).WithError(err).Debug("Failed to resolve setter")
			return false, nil
		}

		fields := logrus.Fields{
			"framework": fw.Name,
			"display":   id,
			"level":     level,
		}
		logrus.WithFields(fields).Trace("Trying to set brightness")

		if code := set(id, level); code != 0 {
			return true, &CallError{Framework: fw.Name, Symbol: fw.SetSymbol, Code: code}
		}

		logrus.WithFields(fields).Trace("Set brightness succeed")
		res = &Result{Display: id, Level: level, Framework: fw.Name}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Get reads the brightness of the main display.
func (c *Controller) Get() (*Result, error) {
	id := c.mainDisplay()
	var res *Result

	err := c.withFramework(func(fw Framework, lib Library) (bool, error) {
		get, err := lib.Getter(fw.GetSymbol, fw.GetStyle)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"framework": fw.Name,
				"symbol":    fw.GetSymbol,
			}).WithError(err).Debug("Failed to resolve getter")
			return false, nil
		}

		level, code := get(id)
		if code != 0 {
			return true, &CallError{Framework: fw.Name, Symbol: fw.GetSymbol, Code: code}
		}

		logrus.WithFields(logrus.Fields{
			"framework": fw.Name,
			"display":   id,
			"level":     level,
		}).Trace("Load brightness succeed")
		res = &Result{Display: id, Level: level, Framework: fw.Name}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Step changes the brightness by delta, clamping the result to [0, 1].
func (c *Controller) Step(delta float32) (*Result, error) {
	cur, err := c.Get()
	if err != nil {
		return nil, err
	}

	next := Clamp(cur.Level + delta)
	logrus.WithFields(logrus.Fields{
		"current": cur.Level,
		"delta":   delta,
		"next":    next,
	}).Debug("Stepping brightness")

	return c.Set(next)
}
