package weather

import (
	"net/url"
	"strconv"
)

// Endpoint is a path relative to the API base URL plus its query arguments.
type Endpoint struct {
	Path  string
	Query url.Values
}

// NamedEndpoint addresses a resource by location name. The name is escaped
// as a single path segment.
func NamedEndpoint(kind ResourceKind, name string) Endpoint {
	return Endpoint{Path: "/" + string(kind) + "/" + url.PathEscape(name)}
}

// CoordsEndpoint addresses a resource by coordinates.
func CoordsEndpoint(kind ResourceKind, c Coordinates) Endpoint {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	return Endpoint{Path: "/" + string(kind) + "-coords", Query: q}
}
