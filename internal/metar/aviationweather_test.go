package metar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAviationWeatherClient(t *testing.T) {
	client := NewAviationWeatherClient()

	if client == nil {
		t.Fatal("NewAviationWeatherClient() returned nil")
	}
	if client.baseURL != "https://aviationweather.gov/api/data" {
		t.Errorf("baseURL = %s, want https://aviationweather.gov/api/data", client.baseURL)
	}
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}
	if client.userAgent == "" {
		t.Error("userAgent should not be empty")
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *AviationWeatherClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewAviationWeatherClient()
	client.baseURL = server.URL
	return client
}

func TestGetObservation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/metar" {
			t.Errorf("path = %s, want /metar", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "KBOS" {
			t.Errorf("ids = %s, want KBOS", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %s, want json", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{
			"icaoId": "KBOS",
			"name": "Boston/Logan Intl, MA, US",
			"obsTime": 1760619240,
			"wdir": 270,
			"wspd": 20,
			"wgst": 28,
			"rawOb": "METAR KBOS 161254Z 27020G28KT 10SM FEW050 12/02 A2992"
		}]`)
	})

	obs, err := client.GetObservation(context.Background(), " kbos")
	require.NoError(t, err)

	assert.Equal(t, "KBOS", obs.StationID)
	assert.Equal(t, "Boston/Logan Intl, MA, US", obs.StationName)
	assert.Equal(t, time.Unix(1760619240, 0).UTC(), obs.ObservedAt)
	assert.Equal(t, airspeed.PolarVector{Direction: 270, Speed: 20}, obs.Wind())
	assert.True(t, obs.HasGust)
	assert.Equal(t, airspeed.PolarVector{Direction: 270, Speed: 28}, obs.GustVector())
	assert.False(t, obs.Variable)
	assert.Contains(t, obs.RawText, "27020G28KT")
}

func TestGetObservation_VariableNoGust(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"icaoId":"1B9","obsTime":1760619240,"wdir":"VRB","wspd":3,"wgst":null,"rawOb":"1B9 161255Z AUTO VRB03KT"}]`)
	})

	obs, err := client.GetObservation(context.Background(), "1B9")
	require.NoError(t, err)

	assert.True(t, obs.Variable)
	assert.Equal(t, 0, obs.WindDirection)
	assert.Equal(t, 3.0, obs.WindSpeed)
	assert.False(t, obs.HasGust)
	assert.False(t, obs.IsCalm())
}

func TestGetObservation_Calm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"icaoId":"KBED","obsTime":1760619240,"wdir":0,"wspd":0,"rawOb":"KBED 161256Z 00000KT"}]`)
	})

	obs, err := client.GetObservation(context.Background(), "KBED")
	require.NoError(t, err)
	assert.True(t, obs.IsCalm())
}

func TestGetObservation_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantNoData bool
	}{
		{"empty result", http.StatusOK, `[]`, true},
		{"no content", http.StatusNoContent, ``, true},
		{"server error", http.StatusInternalServerError, `boom`, false},
		{"bad json", http.StatusOK, `{not json`, false},
		{"bad direction", http.StatusOK, `[{"icaoId":"KBOS","wdir":"NORTH"}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			obs, err := client.GetObservation(context.Background(), "KBOS")
			require.Error(t, err)
			assert.Nil(t, obs)
			assert.Equal(t, tt.wantNoData, errors.Is(err, ErrNoObservation))
		})
	}
}

func TestGetObservation_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetObservation(ctx, "KBOS")
	assert.Error(t, err)
}

func TestAviationWeatherClient_ImplementsInterface(t *testing.T) {
	var _ ObservationClient = NewAviationWeatherClient()
}
