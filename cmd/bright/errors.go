package main

import "errors"

// ErrUsage is returned when bright is not given exactly one value.
var ErrUsage = errors.New("invalid number of arguments")
