package transcache

import "fmt"

// CacheError indicates a cache backend failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CatalogError indicates a translation file that could not be read or decoded.
type CatalogError struct {
	Message string
	Cause   error
	Path    string // The file that failed to load
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error (%s): %s", e.Path, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// ConfigError indicates an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}
