// Package weather fetches current conditions from the OpenWeather API and
// reshapes them into models.WeatherSnapshot.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/postboard/postboard/internal/models"
)

// DefaultBaseURL is the public OpenWeather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org"

const defaultTimeout = 10 * time.Second

// Coordinates is the query accepted by CurrentWeather. Values are kept as
// submitted by the form.
type Coordinates struct {
	Lat string `validate:"required,latitude"`
	Lon string `validate:"required,longitude"`
}

// Client calls the current-weather endpoint.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	validate *validator.Validate
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
// A non-positive timeout falls back to ten seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		validate: validator.New(),
	}
}

type apiResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// CurrentWeather returns the current conditions at the given coordinates in
// imperial units. Coordinates are validated before any request is sent.
func (c *Client) CurrentWeather(ctx context.Context, coords Coordinates) (*models.WeatherSnapshot, error) {
	coords.Lat = strings.TrimSpace(coords.Lat)
	coords.Lon = strings.TrimSpace(coords.Lon)
	if err := c.check(coords); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("lat", coords.Lat)
	q.Set("lon", coords.Lon)
	q.Set("units", "imperial")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", models.ErrExternalAPI, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", models.ErrExternalAPI, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", models.ErrExternalAPI, err)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("%w: response has no weather conditions", models.ErrExternalAPI)
	}

	return &models.WeatherSnapshot{
		Temp:                 payload.Main.Temp,
		TempMin:              payload.Main.TempMin,
		TempMax:              payload.Main.TempMax,
		Humidity:             payload.Main.Humidity,
		ConditionMain:        payload.Weather[0].Main,
		ConditionDescription: payload.Weather[0].Description,
		IconCode:             payload.Weather[0].Icon,
	}, nil
}

// check maps validation failures onto the coordinate errors.
func (c *Client) check(coords Coordinates) error {
	err := c.validate.Struct(coords)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return models.ErrMissingCoordinates
		}
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidCoordinates, ve[0].Field())
}
