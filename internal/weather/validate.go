package weather

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// normalizeCity trims the name and rejects empty or whitespace-only input.
func normalizeCity(city string) (string, error) {
	name := strings.TrimSpace(city)
	if err := validate.Var(name, "required"); err != nil {
		return "", ErrCityRequired
	}
	return name, nil
}

// Validate checks that both coordinates are within range. Latitude is checked first.
func (c Coordinates) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Lat":
			return ErrLatitudeRange
		case "Lon":
			return ErrLongitudeRange
		}
	}
	return &ValidationError{Field: "coordinates", Message: err.Error()}
}
