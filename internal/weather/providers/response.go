package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/i474232898/weather-client/internal/weather"
)

// decodeResponse turns a completed response into a JSON object body or an error.
func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &weather.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response: %w", readErr)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, weather.ErrInvalidResponse
	}
	return json.RawMessage(body), nil
}

// errorMessage prefers the "message" field of a JSON error body and falls back
// to the status line.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
