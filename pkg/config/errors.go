package config

import "errors"

// Sentinel errors for the config package.
var (
	// ErrKeyNotFound is returned when a key has not been added to the store.
	ErrKeyNotFound = errors.New("config: key not found")

	// ErrTypeMismatch is returned when a stored value has an unexpected type.
	ErrTypeMismatch = errors.New("config: type mismatch")

	// ErrInvalidFormat is returned when a configuration source cannot be decoded.
	ErrInvalidFormat = errors.New("config: invalid format")

	// ErrSourceUnavailable is returned when a remote source cannot be read.
	ErrSourceUnavailable = errors.New("config: source unavailable")
)
