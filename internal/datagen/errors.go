package datagen

import "errors"

// ErrInvalidConfig reports an unusable generator config.
var ErrInvalidConfig = errors.New("invalid datagen config")
