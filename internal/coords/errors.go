package coords

import "github.com/pkg/errors"

var errInvalidSize = errors.New("coords: view size must have positive real and imaginary parts")
