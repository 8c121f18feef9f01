// Package weather fetches current conditions from an OpenWeatherMap
// compatible endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/apperr"
)

const (
	msgEmptyCity = "Please enter a valid location"
	msgNotFound  = "City not found!. Please try again"
)

// Report is the subset of the current-weather payload the card shows.
// Temperatures are Celsius.
type Report struct {
	Temperature int
	Unit        string
	Description string
	Icon        string
	Location    string
	Country     string
	WindSpeed   float64
	WindDeg     float64
	Pressure    float64
	Humidity    float64
	SeaLevel    *float64
	Latitude    float64
	Longitude   float64
}

// Client talks to the weather API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

// NewClient returns a client for baseURL. Every request is bounded by timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     logger.Named("weather"),
	}
}

// Current fetches the conditions for city. An empty city is a validation
// error and sends nothing; any transport, status or decode failure is a
// network error.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if err := ValidateCity(city); err != nil {
		return Report{}, err
	}

	q := url.Values{}
	q.Set("units", "metric")
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, apperr.Network(msgNotFound, fmt.Errorf("create request: %w", err))
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("city", city), zap.Error(err))
		return Report{}, apperr.Network(msgNotFound, fmt.Errorf("weather request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("unexpected status", zap.String("city", city), zap.Int("status", resp.StatusCode))
		return Report{}, apperr.Network(msgNotFound, fmt.Errorf("weather returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("decode failed", zap.String("city", city), zap.Error(err))
		return Report{}, apperr.Network(msgNotFound, fmt.Errorf("decode weather: %w", err))
	}
	return payload.report(), nil
}

// ValidateCity rejects an empty location before any request is made.
func ValidateCity(city string) error {
	if strings.TrimSpace(city) == "" {
		return apperr.Validation(msgEmptyCity)
	}
	return nil
}

type currentResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp     float64  `json:"temp"`
		Pressure float64  `json:"pressure"`
		Humidity float64  `json:"humidity"`
		SeaLevel *float64 `json:"sea_level"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (p currentResponse) report() Report {
	r := Report{
		Temperature: int(math.Round(p.Main.Temp)),
		Unit:        "C",
		Location:    p.Name,
		Country:     p.Sys.Country,
		WindSpeed:   p.Wind.Speed,
		WindDeg:     p.Wind.Deg,
		Pressure:    p.Main.Pressure,
		Humidity:    p.Main.Humidity,
		SeaLevel:    p.Main.SeaLevel,
		Latitude:    p.Coord.Lat,
		Longitude:   p.Coord.Lon,
	}
	if len(p.Weather) > 0 {
		r.Description = p.Weather[0].Description
		r.Icon = p.Weather[0].Icon
	}
	return r
}
