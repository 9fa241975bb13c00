package ism

import "errors"

// ErrGasEvolution is returned when the gas reservoir cannot be advanced, for
// example when a specified rate is negative or not finite.
var ErrGasEvolution = errors.New("ism: gas evolution failed")
