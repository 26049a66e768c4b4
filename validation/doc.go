// Package validation validates configuration structs with struct tags.
//
//	type LoadOptions struct {
//	    Fixtures string `mapstructure:"fixtures" validate:"required"`
//	}
//	err := validation.Validate(opts)
//
// Failures are CONFIGURATION_ERROR app errors listing every invalid field.
package validation
