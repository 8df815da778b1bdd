package premium

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation failures. Callers match on the message text, so it must stay stable.
var (
	ErrMissingValues = validation.NewError("validation_missing_values", "Missing values in input")
	ErrInvalidRegion = validation.NewError("validation_invalid_region", "Invalid region value")
	ErrInvalidGender = validation.NewError("validation_invalid_gender", "Invalid gender value")
)

var (
	ErrNotObject    = errors.New("request body must be a JSON object")
	ErrNoPrediction = errors.New("model returned no prediction")
	ErrNonFinite    = errors.New("model returned a non-finite prediction")
)

// IsValidationError reports whether err is one of the input validation failures.
func IsValidationError(err error) bool {
	var verr validation.Error
	return errors.As(err, &verr)
}
