package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrEventNotFound      = fmt.Errorf("event not found")
	ErrNoResults          = fmt.Errorf("no results")
	ErrStaleResponse      = fmt.Errorf("stale response discarded")

	// Storage errors
	ErrStorage        = fmt.Errorf("storage failure")
	ErrSlotNotFound   = fmt.Errorf("slot not found")
	ErrCorruptSlot    = fmt.Errorf("stored value is corrupt")
	ErrLegacyFormat   = fmt.Errorf("unsupported legacy format")
	ErrUnknownBackend = fmt.Errorf("unknown storage driver")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
