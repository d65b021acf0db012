package weather

import (
	"errors"
)

// ValidationError reports caller input rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// APIError is a non-success HTTP response from the weather API.
// Message is the server supplied message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrCityRequired   = &ValidationError{Field: "city", Message: "City name is required"}
	ErrLatitudeRange  = &ValidationError{Field: "lat", Message: "Latitude must be between -90 and 90"}
	ErrLongitudeRange = &ValidationError{Field: "lon", Message: "Longitude must be between -180 and 180"}
	ErrUnitsInvalid   = &ValidationError{Field: "units", Message: "Units must be metric or imperial"}

	// ErrInvalidResponse is returned for a success response whose body is not a JSON object.
	ErrInvalidResponse = errors.New("Invalid response format from weather service")

	// ErrTimeout is returned when an attempt does not complete within its timeout.
	ErrTimeout = errors.New("request timed out")
)

// IsValidation reports whether err is an input validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
