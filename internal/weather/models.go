package weather

import (
	"fmt"

	"github.com/i474232898/weather-client/internal/common"
)

// Units selects the measurement system the API reports in.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits validates a units string. An empty string yields UnitsMetric.
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case "":
		return UnitsMetric, nil
	case UnitsMetric, UnitsImperial:
		return Units(s), nil
	default:
		return "", fmt.Errorf("unsupported units %q: use %s or %s", s, UnitsMetric, UnitsImperial)
	}
}

// ResourceKind names a resource family exposed by the weather API.
type ResourceKind string

const (
	KindWeather  ResourceKind = "weather"
	KindForecast ResourceKind = "forecast"
	KindAlerts   ResourceKind = "alerts"
	KindStats    ResourceKind = "stats"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// MainReadings holds the headline measurements of a reading.
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

// Description is one entry of the API's "weather" array.
type Description struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind holds wind speed and direction.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// CurrentWeather is the payload of the current weather resources.
type CurrentWeather struct {
	Name       string        `json:"name"`
	Coord      *Coordinates  `json:"coord,omitempty"`
	Main       MainReadings  `json:"main"`
	Weather    []Description `json:"weather,omitempty"`
	Wind       Wind          `json:"wind"`
	Visibility float64       `json:"visibility,omitempty"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise,omitempty"`
		Sunset  int64  `json:"sunset,omitempty"`
	} `json:"sys"`
	Dt       int64 `json:"dt,omitempty"`
	Timezone int   `json:"timezone,omitempty"`
}

// Condition maps the reported description onto a normalized Condition.
func (w CurrentWeather) Condition() Condition {
	if len(w.Weather) == 0 {
		return ConditionUnknown
	}
	switch w.Weather[0].Main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm":
		return ConditionStorm
	case "Mist", "Fog", "Haze":
		return ConditionMist
	}

	text := w.Weather[0].Description
	switch {
	case common.HasAny(text, "thunder", "storm"):
		return ConditionStorm
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(text, "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(text, "mist", "fog", "haze"):
		return ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(text, "sunny", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}

// WeatherResponse is the envelope returned by /weather and /weather-coords.
type WeatherResponse struct {
	Success   bool            `json:"success"`
	Data      *CurrentWeather `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// ForecastEntry is one time step of a forecast.
type ForecastEntry struct {
	Dt      int64         `json:"dt"`
	DtTxt   string        `json:"dt_txt,omitempty"`
	Main    MainReadings  `json:"main"`
	Weather []Description `json:"weather,omitempty"`
	Wind    Wind          `json:"wind"`
	Pop     float64       `json:"pop,omitempty"`
}

// Forecast is a location plus its forecast entries, ordered by Dt ascending.
type Forecast struct {
	City struct {
		Name    string       `json:"name"`
		Country string       `json:"country"`
		Coord   *Coordinates `json:"coord,omitempty"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// ForecastResponse is the envelope returned by /forecast and /forecast-coords.
type ForecastResponse struct {
	Success   bool      `json:"success"`
	Data      *Forecast `json:"data,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// Alert is a weather warning issued for a location.
type Alert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// AlertsResponse is the envelope returned by /alerts and /alerts-coords.
type AlertsResponse struct {
	Success   bool    `json:"success"`
	Data      []Alert `json:"data"`
	Message   string  `json:"message,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// HealthStatus is the payload of /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// LocationMatch is a best-effort location search hit.
type LocationMatch struct {
	Name    string       `json:"name"`
	Coord   *Coordinates `json:"coord,omitempty"`
	Country string       `json:"country"`
}

// BatchResult is the outcome of one city in a GetMultiple call.
// Exactly one of Data and Error is set.
type BatchResult struct {
	City  string           `json:"city"`
	Data  *WeatherResponse `json:"data"`
	Error string           `json:"error,omitempty"`
}
