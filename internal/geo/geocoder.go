// Package geo resolves free-form addresses to coordinates with the Google
// Geocoding API.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-client/internal/weather"
)

var errEmptyAddress = errors.New("address is required")

// The geocoder package keeps its API key in a package variable.
var keyMu sync.Mutex

// Resolver looks up coordinates for an address.
type Resolver struct {
	apiKey string
}

// NewResolver creates a Resolver using apiKey.
func NewResolver(apiKey string) *Resolver {
	return &Resolver{apiKey: apiKey}
}

// Locate returns the coordinates of address.
func (r *Resolver) Locate(ctx context.Context, address string) (weather.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return weather.Coordinates{}, errEmptyAddress
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	keyMu.Lock()
	geocoder.ApiKey = r.apiKey
	loc, err := geocoder.Geocoding(geocoder.Address{City: address})
	keyMu.Unlock()
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	return weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
