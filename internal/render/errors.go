package render

import "github.com/pkg/errors"

// ConfigError reports an invalid render configuration (bad view, palette
// too short, non-positive dimensions) discovered synchronously before any
// pixel work begins.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string { return "render: invalid configuration: " + e.cause.Error() }
func (e *ConfigError) Unwrap() error { return e.cause }

func newConfigError(msg string) error {
	return &ConfigError{cause: errors.New(msg)}
}

// ResourceError reports that the requested output (after oversampling)
// would require an unreasonable amount of memory.
type ResourceError struct {
	cause error
}

func (e *ResourceError) Error() string { return "render: resource limit exceeded: " + e.cause.Error() }
func (e *ResourceError) Unwrap() error { return e.cause }

func newResourceError(msg string) error {
	return &ResourceError{cause: errors.New(msg)}
}

// maxPixelBudget bounds width*height of the internal (oversampled) buffer.
const maxPixelBudget = 64 * 1024 * 1024 // 64 megapixels
