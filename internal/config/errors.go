package config

import "errors"

var (
	ErrInvalidClientConfigs   = errors.New("invalid client configuration")
	ErrInvalidServerConfigs   = errors.New("invalid server configuration")
	ErrInvalidStorageConfigs  = errors.New("invalid storage configuration")
	ErrInvalidRecorderConfigs = errors.New("invalid recorder configuration")
	ErrInvalidLogConfigs      = errors.New("invalid log configuration")
)
