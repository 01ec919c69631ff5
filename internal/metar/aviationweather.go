package metar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// AviationWeatherClient implements ObservationClient using the
// aviationweather.gov data API
type AviationWeatherClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewAviationWeatherClient creates a new aviationweather.gov client
func NewAviationWeatherClient() *AviationWeatherClient {
	return &AviationWeatherClient{
		baseURL: "https://aviationweather.gov/api/data",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "E6BTerminal/1.0 (github.com/ngmaloney/e6b-terminal)",
	}
}

// metarResponse is one element of the /metar JSON array
type metarResponse struct {
	IcaoID  string        `json:"icaoId"`
	Name    string        `json:"name"`
	ObsTime int64         `json:"obsTime"`
	Wdir    windDirection `json:"wdir"`
	Wspd    *float64      `json:"wspd"`
	Wgst    *float64      `json:"wgst"`
	RawOb   string        `json:"rawOb"`
}

// windDirection holds a wdir value, which is either degrees or "VRB"
type windDirection struct {
	Degrees  int
	Variable bool
}

func (w *windDirection) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "null", "":
		return nil
	case "VRB":
		w.Variable = true
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid wind direction %q", s)
	}
	w.Degrees = int(f)
	return nil
}

// GetObservation retrieves the latest METAR for station
func (c *AviationWeatherClient) GetObservation(ctx context.Context, station string) (*models.Observation, error) {
	station = strings.ToUpper(strings.TrimSpace(station))

	params := url.Values{}
	params.Set("ids", station)
	params.Set("format", "json")
	reqURL := fmt.Sprintf("%s/metar?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch METAR: %w", err)
	}
	defer resp.Body.Close()

	// An unknown station answers 204 with no body
	if resp.StatusCode == http.StatusNoContent {
		return nil, fmt.Errorf("%s: %w", station, ErrNoObservation)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []metarResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: %w", station, ErrNoObservation)
	}

	return results[0].toObservation(), nil
}

func (m metarResponse) toObservation() *models.Observation {
	obs := &models.Observation{
		StationID:     m.IcaoID,
		StationName:   m.Name,
		ObservedAt:    time.Unix(m.ObsTime, 0).UTC(),
		WindDirection: m.Wdir.Degrees,
		Variable:      m.Wdir.Variable,
		RawText:       m.RawOb,
	}
	if m.Wspd != nil {
		obs.WindSpeed = *m.Wspd
	}
	if m.Wgst != nil && *m.Wgst > 0 {
		obs.WindGust = *m.Wgst
		obs.HasGust = true
	}
	return obs
}
