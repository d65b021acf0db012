package httpapi

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-client/internal/common"
	"github.com/i474232898/weather-client/internal/weather"
)

var validate = validator.New()

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, address string) (weather.Coordinates, error)
}

// CacheAdmin is the cache surface exposed for diagnostics.
type CacheAdmin interface {
	ClearPattern(pattern string) (int, error)
	Healthy() bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// cacheAdmin and geocoder may be nil; the routes that need them are then
// served without them or not registered.
func RegisterRoutes(app *fiber.App, service *weather.Service, cacheAdmin CacheAdmin, geocoder Geocoder) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/:city", func(c *fiber.Ctx) error {
		city, opts, q, err := parseNamed(c)
		if err != nil {
			return err
		}

		var resp *weather.WeatherResponse
		if q.Cached {
			resp, err = service.GetCurrentWeatherCached(c.UserContext(), city, q.TTL, opts...)
		} else {
			resp, err = service.GetCurrentWeather(c.UserContext(), city, opts...)
		}
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/weather-coords", func(c *fiber.Ctx) error {
		coords, opts, err := parseCoords(c)
		if err != nil {
			return err
		}
		resp, err := service.GetCurrentWeatherByCoords(c.UserContext(), coords.Lat, coords.Lon, opts...)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/forecast/:city", func(c *fiber.Ctx) error {
		city, opts, q, err := parseNamed(c)
		if err != nil {
			return err
		}

		var resp *weather.ForecastResponse
		if q.Cached {
			resp, err = service.GetForecastCached(c.UserContext(), city, q.TTL, opts...)
		} else {
			resp, err = service.GetForecast(c.UserContext(), city, opts...)
		}
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/forecast-coords", func(c *fiber.Ctx) error {
		coords, opts, err := parseCoords(c)
		if err != nil {
			return err
		}
		resp, err := service.GetForecastByCoords(c.UserContext(), coords.Lat, coords.Lon, opts...)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/alerts/:city", func(c *fiber.Ctx) error {
		city, opts, _, err := parseNamed(c)
		if err != nil {
			return err
		}
		resp, err := service.GetAlerts(c.UserContext(), city, opts...)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/alerts-coords", func(c *fiber.Ctx) error {
		coords, opts, err := parseCoords(c)
		if err != nil {
			return err
		}
		resp, err := service.GetAlertsByCoords(c.UserContext(), coords.Lat, coords.Lon, opts...)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(resp)
	})

	v1.Get("/stats/:city", func(c *fiber.Ctx) error {
		city, _, _, err := parseNamed(c)
		if err != nil {
			return err
		}
		stats, err := service.GetWeatherStats(c.UserContext(), city)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(stats)
	})

	v1.Get("/batch", func(c *fiber.Ctx) error {
		q := batchQuery{Cities: common.SplitList(c.Query("cities"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cities must list between 1 and 50 names")
		}
		opts, err := parseUnits(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"results": service.GetMultiple(c.UserContext(), q.Cities, opts...),
		})
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		return c.JSON(service.SearchLocation(c.UserContext(), c.Query("q")))
	})

	if geocoder != nil {
		v1.Get("/weather-address", func(c *fiber.Ctx) error {
			address := c.Query("address")
			if err := validate.Var(address, "required"); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "address query parameter is required")
			}
			opts, err := parseUnits(c)
			if err != nil {
				return err
			}

			coords, err := geocoder.Locate(c.UserContext(), address)
			if err != nil {
				return fiber.NewError(fiber.StatusBadGateway, "failed to resolve address")
			}
			resp, err := service.GetCurrentWeatherByCoords(c.UserContext(), coords.Lat, coords.Lon, opts...)
			if err != nil {
				return toHTTPError(err)
			}
			return c.JSON(fiber.Map{
				"coord":   coords,
				"weather": resp,
			})
		})
	}

	v1.Get("/cache", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"size": service.CacheSize()})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		pattern := c.Query("pattern", "*")
		if cacheAdmin == nil || pattern == "*" {
			removed := service.CacheSize()
			service.ClearCache()
			return c.JSON(fiber.Map{"removed": removed})
		}

		removed, err := cacheAdmin.ClearPattern(pattern)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"removed": removed})
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		cacheHealthy := cacheAdmin == nil || cacheAdmin.Healthy()
		return c.JSON(fiber.Map{
			"available":    service.IsServiceAvailable(c.UserContext()),
			"cacheHealthy": cacheHealthy,
			"cacheSize":    service.CacheSize(),
		})
	})

	v1.Get("/info", func(c *fiber.Ctx) error {
		return c.JSON(service.GetAPIInfo(c.UserContext()))
	})
}

// optionsQuery holds the per-request option query parameters.
type optionsQuery struct {
	Units  string `validate:"omitempty,oneof=metric imperial"`
	Cached bool
	TTL    time.Duration `validate:"gte=0"`
}

// coordsQuery holds the coordinate query parameters.
type coordsQuery struct {
	Lat *float64 `validate:"required"`
	Lon *float64 `validate:"required"`
}

type batchQuery struct {
	Cities []string `validate:"required,min=1,max=50,dive,required"`
}

func parseOptions(c *fiber.Ctx) ([]weather.Option, optionsQuery, error) {
	var q optionsQuery

	q.Units = c.Query("units")
	if v := c.Query("cached"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, q, fiber.NewError(fiber.StatusBadRequest, "cached must be a boolean")
		}
		q.Cached = b
	}
	if v := c.Query("ttl"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, q, fiber.NewError(fiber.StatusBadRequest, "ttl must be a duration such as 15m")
		}
		q.TTL = d
	}

	if err := validate.Struct(q); err != nil {
		return nil, q, fiber.NewError(fiber.StatusBadRequest, "units must be metric or imperial; ttl must not be negative")
	}

	var opts []weather.Option
	if q.Units != "" {
		opts = append(opts, weather.WithUnits(weather.Units(q.Units)))
	}
	return opts, q, nil
}

func parseUnits(c *fiber.Ctx) ([]weather.Option, error) {
	opts, _, err := parseOptions(c)
	return opts, err
}

func parseNamed(c *fiber.Ctx) (string, []weather.Option, optionsQuery, error) {
	city, err := url.PathUnescape(c.Params("city"))
	if err != nil {
		return "", nil, optionsQuery{}, fiber.NewError(fiber.StatusBadRequest, "invalid city encoding")
	}
	opts, q, err := parseOptions(c)
	if err != nil {
		return "", nil, q, err
	}
	return city, opts, q, nil
}

func parseCoords(c *fiber.Ctx) (weather.Coordinates, []weather.Option, error) {
	var q coordsQuery
	for key, dst := range map[string]**float64{"lat": &q.Lat, "lon": &q.Lon} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return weather.Coordinates{}, nil, fiber.NewError(fiber.StatusBadRequest, key+" must be a number")
		}
		*dst = &f
	}
	if err := validate.Struct(q); err != nil {
		return weather.Coordinates{}, nil, fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
	}

	opts, err := parseUnits(c)
	if err != nil {
		return weather.Coordinates{}, nil, err
	}
	return weather.Coordinates{Lat: *q.Lat, Lon: *q.Lon}, opts, nil
}

// toHTTPError maps service errors onto HTTP status codes.
func toHTTPError(err error) error {
	var (
		validationErr *weather.ValidationError
		apiErr        *weather.APIError
	)
	switch {
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Message)
	case errors.Is(err, weather.ErrTimeout):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return fiber.NewError(apiErr.StatusCode, apiErr.Message)
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}
