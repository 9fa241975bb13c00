package config

import "errors"

// ErrInvalidConfig is returned for run files that cannot describe a model.
var ErrInvalidConfig = errors.New("config: invalid run configuration")
