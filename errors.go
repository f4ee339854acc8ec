package squill

import "errors"

// Common errors used throughout the squill package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownRuleCode is returned when configuration references a rule code
	// that is not registered.
	ErrUnknownRuleCode = errors.New("unknown rule code")
	// ErrInvalidRuleParameter indicates a rule parameter value is outside its
	// allowed set.
	ErrInvalidRuleParameter = errors.New("invalid rule parameter")
)
