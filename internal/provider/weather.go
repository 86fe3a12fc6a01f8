package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"
)

const weatherBaseURL = "https://app-api.flightview.com/api"

// Weather is current airport weather. Consumed by the presentation layer
// only; the flight pipeline never depends on it.
type Weather struct {
	Location         string  `json:"location"`
	Phrase           string  `json:"phrase"`
	Temperature      float64 `json:"temperature"`
	TemperatureUnits string  `json:"temperatureUnits"`
	RelativeHumidity float64 `json:"relativeHumidity"`
	WindDirection    string  `json:"windDirection"`
	WindSpeed        float64 `json:"windSpeed"`
	WindSpeedUnits   string  `json:"windSpeedUnits"`
	Icon             string  `json:"icon"`
	TimeStamp        string  `json:"timeStamp"`
}

// FormattedTemperature renders the temperature in Celsius, converting from
// Fahrenheit when needed.
func (w Weather) FormattedTemperature() string {
	if w.TemperatureUnits == "F" {
		c := math.Round((w.Temperature - 32) * 5 / 9)
		return fmt.Sprintf("%.0f°C", c)
	}
	return fmt.Sprintf("%.0f°%s", w.Temperature, w.TemperatureUnits)
}

// WeatherClient fetches current weather for an airport by IATA code.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWeatherClient creates an airport weather client.
func NewWeatherClient(log *slog.Logger) *WeatherClient {
	return &WeatherClient{
		baseURL:    weatherBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With("provider", "weather"),
	}
}

// WithBaseURL overrides the upstream base URL, mainly for tests.
func (c *WeatherClient) WithBaseURL(u string) *WeatherClient {
	c.baseURL = u
	return c
}

// AirportWeather fetches current weather for an airport.
func (c *WeatherClient) AirportWeather(ctx context.Context, iata string) (*Weather, error) {
	u := fmt.Sprintf("%s/weather/%s/", c.baseURL, url.PathEscape(iata))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", "https://www.flightview.com")

	c.log.Debug("fetching airport weather", "airport", iata)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var w Weather
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, fmt.Errorf("weather: decoding response: %w", err)
	}
	return &w, nil
}
