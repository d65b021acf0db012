package providers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/i474232898/weather-client/internal/weather"
)

// BuildURL joins the API base URL with the endpoint and appends the units
// query argument when units is set.
func BuildURL(baseURL string, ep weather.Endpoint, units weather.Units) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + ep.Path)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint url %q: base url must be absolute", u.String())
	}

	q := u.Query()
	for key, values := range ep.Query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	if units != "" {
		q.Set("units", string(units))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
