package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns a config validation error
// occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldInvalidError returns a config validation
// error for a field holding a value outside of its allowed range.
func NewConfigValidationFieldInvalidError(path, field string, value interface{}) error {
	return NewConfigValidationError(path, errors.Errorf("%q has invalid value %v", field, value))
}
