package forecast_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	forecast "github.com/mutablelogic/go-meteo/pkg/forecast"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK SERVER

const copenhagenGeocode = `{
	"results": [{
		"id": 2618425, "name": "Copenhagen", "latitude": 55.67594, "longitude": 12.56553,
		"country_code": "DK", "country": "Denmark", "admin1": "Capital Region", "timezone": "Europe/Copenhagen"
	}]
}`

const copenhagenForecast = `{
	"latitude": 55.68, "longitude": 12.57, "timezone": "Europe/Copenhagen",
	"daily_units": {"time": "iso8601", "weathercode": "wmo code", "temperature_2m_max": "°C", "temperature_2m_min": "°C", "precipitation_sum": "mm"},
	"daily": {
		"time": ["2026-10-19", "2026-10-20", "2026-10-21"],
		"weathercode": [3, 61, 2],
		"temperature_2m_max": [5.0, 6.5, 7.1],
		"temperature_2m_min": [1.0, 2.2, 3.4],
		"precipitation_sum": [0.0, 4.2, 0.1]
	}
}`

// mock serves canned geocoding and forecast responses and counts requests
type mock struct {
	sync.Mutex
	geocode   atomic.Int32
	forecast  atomic.Int32
	names     []string
	forecasts []map[string][]string
}

func newMock(t *testing.T, geocode func(name string) string, forecastBody string) (*mock, *openmeteo.Client) {
	t.Helper()
	m := new(mock)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocoding/"):
			m.geocode.Add(1)
			name := r.URL.Query().Get("name")
			m.Lock()
			m.names = append(m.names, name)
			m.Unlock()
			w.Write([]byte(geocode(name)))
		case strings.HasPrefix(r.URL.Path, "/forecast/"):
			m.forecast.Add(1)
			m.Lock()
			m.forecasts = append(m.forecasts, r.URL.Query())
			m.Unlock()
			w.Write([]byte(forecastBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := openmeteo.NewWithEndpoints(server.URL+"/geocoding", server.URL+"/forecast")
	if err != nil {
		t.Fatal(err)
	}
	return m, client
}

func newTool(t *testing.T, client *openmeteo.Client) *forecast.Tool {
	t.Helper()
	result, err := forecast.New(client, client)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// upstream serves both Open-Meteo hosts from separate handlers and counts
// the requests to each
type upstream struct {
	geocode  atomic.Int32
	forecast atomic.Int32
}

func newUpstream(t *testing.T, geocode, forecast http.HandlerFunc) (*upstream, *openmeteo.Client) {
	t.Helper()
	u := new(upstream)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/geocoding/") {
			u.geocode.Add(1)
			geocode(w, r)
		} else {
			u.forecast.Add(1)
			forecast(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := openmeteo.NewWithEndpoints(server.URL+"/geocoding", server.URL+"/forecast")
	if err != nil {
		t.Fatal(err)
	}
	return u, client
}

// slow answers only after the client has given up
func slow(_ http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(5 * time.Second):
	}
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(body))
	}
}

func copenhagen(name string) string {
	if name == "Copenhagen" {
		return copenhagenGeocode
	}
	return `{}`
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_forecast_001(t *testing.T) {
	assert := assert.New(t)
	m, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	result, err := tool.Forecast(context.Background(), "Copenhagen", forecast.DefaultOptions())
	if !assert.NoError(err) {
		t.FailNow()
	}

	assert.Equal("Copenhagen", result.Query)
	assert.Equal("Copenhagen", *result.Location.Name)
	assert.Equal("Denmark", *result.Location.Country)
	assert.Equal("Capital Region", *result.Location.Admin1)
	assert.Equal(55.67594, result.Location.Latitude)
	assert.Equal(12.56553, result.Location.Longitude)
	assert.Equal("Europe/Copenhagen", result.Location.Timezone)
	assert.Equal("°C", result.Units["temperature_2m_max"])
	if assert.Len(result.Daily, 3) {
		assert.Equal("2026-10-19", result.Daily[0].Date)
		assert.Equal(5.0, *result.Daily[0].TempMax)
		assert.Equal(1.0, *result.Daily[0].TempMin)
		assert.Equal(3, *result.Daily[0].WeatherCode)
	}

	assert.EqualValues(1, m.geocode.Load())
	assert.EqualValues(1, m.forecast.Load())
	if assert.Len(m.forecasts, 1) {
		query := m.forecasts[0]
		assert.Equal([]string{"55.67594"}, query["latitude"])
		assert.Equal([]string{"12.56553"}, query["longitude"])
		assert.Equal([]string{"3"}, query["forecast_days"])
		assert.Equal([]string{"celsius"}, query["temperature_unit"])
		assert.Equal([]string{"auto"}, query["timezone"])
	}
}

func Test_forecast_002(t *testing.T) {
	// JSON keys of the result
	assert := assert.New(t)
	_, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	result, err := tool.Run(context.Background(), json.RawMessage(`{"place":"Copenhagen"}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	data, err := json.Marshal(result)
	if !assert.NoError(err) {
		t.FailNow()
	}

	var value map[string]any
	assert.NoError(json.Unmarshal(data, &value))
	assert.Equal("Copenhagen", value["query"])
	assert.Contains(value, "units")
	location := value["location"].(map[string]any)
	for _, key := range []string{"name", "country", "admin1", "latitude", "longitude", "timezone"} {
		assert.Contains(location, key)
	}
	daily := value["daily"].([]any)
	if assert.Len(daily, 3) {
		day := daily[0].(map[string]any)
		for _, key := range []string{"date", "t_max", "t_min", "precipitation_sum", "weathercode"} {
			assert.Contains(day, key)
		}
	}
}

func Test_forecast_003(t *testing.T) {
	// Coordinates skip geocoding and are echoed as the name
	assert := assert.New(t)
	m, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	result, err := tool.Forecast(context.Background(), "55.676,12.568", forecast.Options{Days: 3, Units: forecast.Fahrenheit, Language: "en"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.EqualValues(0, m.geocode.Load())
	assert.EqualValues(1, m.forecast.Load())
	assert.Equal("55.676,12.568", *result.Location.Name)
	assert.Nil(result.Location.Country)
	assert.Equal([]string{"fahrenheit"}, m.forecasts[0]["temperature_unit"])
}

func Test_forecast_004(t *testing.T) {
	// Invalid options fail before any request
	assert := assert.New(t)
	m, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	for _, input := range []string{
		`{"place":"Copenhagen","days":0}`,
		`{"place":"Copenhagen","days":17}`,
		`{"place":"Copenhagen","lang":"e"}`,
		`{"place":"Copenhagen","lang":"abcdef"}`,
		`{"place":"Copenhagen","units":"K"}`,
		`{"place":"   "}`,
		`{"place":`,
	} {
		_, err := tool.Run(context.Background(), json.RawMessage(input))
		assert.ErrorIs(err, meteo.ErrBadParameter, input)
	}
	assert.EqualValues(0, m.geocode.Load())
	assert.EqualValues(0, m.forecast.Load())
}

func Test_forecast_005(t *testing.T) {
	// Schema validation through the toolkit
	assert := assert.New(t)
	m, client := newMock(t, copenhagen, copenhagenForecast)
	tk, err := tool.NewToolkit(newTool(t, client))
	if !assert.NoError(err) {
		t.FailNow()
	}

	for _, input := range []string{
		`{}`,
		`{"place":"Copenhagen","days":0}`,
		`{"place":"Copenhagen","days":17}`,
		`{"place":"Copenhagen","units":"kelvin"}`,
		`{"place":"Copenhagen","lang":"e"}`,
	} {
		_, err := tk.Run(context.Background(), forecast.Name, json.RawMessage(input))
		assert.ErrorIs(err, meteo.ErrBadParameter, input)
	}
	assert.EqualValues(0, m.geocode.Load())

	result, err := tk.Run(context.Background(), forecast.Name, map[string]any{"place": "Copenhagen", "days": 16, "units": "F", "lang": "da"})
	if assert.NoError(err) {
		assert.IsType(&forecast.Result{}, result)
	}
	assert.Equal([]string{"16"}, m.forecasts[0]["forecast_days"])
}

func Test_forecast_006(t *testing.T) {
	// Schema carries the ranges
	assert := assert.New(t)
	_, client := newMock(t, copenhagen, copenhagenForecast)
	schema, err := newTool(t, client).Schema()
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]string{"place"}, schema.Required)
	if days := schema.Properties["days"]; assert.NotNil(days) {
		assert.Equal([]string{"integer", "string"}, days.Types)
		assert.Equal(1.0, *days.Minimum)
		assert.Equal(16.0, *days.Maximum)
		assert.JSONEq(`3`, string(days.Default))
	}
	if units := schema.Properties["units"]; assert.NotNil(units) {
		assert.Equal([]any{"C", "F"}, units.Enum)
	}
	if lang := schema.Properties["lang"]; assert.NotNil(lang) {
		assert.Equal(2, *lang.MinLength)
		assert.Equal(5, *lang.MaxLength)
	}
}

func Test_forecast_007(t *testing.T) {
	// Not found lists every candidate
	assert := assert.New(t)
	m, client := newMock(t, func(string) string { return `{"generationtime_ms":0.1}` }, copenhagenForecast)
	tool := newTool(t, client)

	_, err := tool.Forecast(context.Background(), "Qwzxylopolis, Nowhere", forecast.DefaultOptions())
	assert.ErrorIs(err, meteo.ErrNotFound)
	assert.Contains(err.Error(), "tried: Qwzxylopolis, Nowhere, Qwzxylopolis, Qwzxylopolis Nowhere")
	assert.Equal([]string{"Qwzxylopolis, Nowhere", "Qwzxylopolis", "Qwzxylopolis Nowhere"}, m.names)
	assert.EqualValues(0, m.forecast.Load())
}

func Test_forecast_008(t *testing.T) {
	// Malformed forecast response
	assert := assert.New(t)
	_, client := newMock(t, copenhagen, `{"timezone":"UTC","daily":{"time":["2026-10-19"],"weathercode":[1],"temperature_2m_max":[],"temperature_2m_min":[1],"precipitation_sum":[0]}}`)
	tool := newTool(t, client)

	_, err := tool.Forecast(context.Background(), "Copenhagen", forecast.DefaultOptions())
	assert.ErrorIs(err, meteo.ErrUnexpectedResponse)
}

func Test_forecast_009(t *testing.T) {
	assert := assert.New(t)
	_, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	assert.Equal("get_weather_forecast", tool.Name())
	assert.NotEmpty(tool.Description())
	hints := tool.Hints()
	assert.True(hints.ReadOnly)
	assert.True(hints.Idempotent)
	assert.True(hints.OpenWorld)

	_, err := forecast.New(nil, client)
	assert.ErrorIs(err, meteo.ErrBadParameter)
	_, err = forecast.New(client, nil)
	assert.ErrorIs(err, meteo.ErrBadParameter)
}

func Test_forecast_014(t *testing.T) {
	// Days may be an integral number or a numeric string
	assert := assert.New(t)
	m, client := newMock(t, copenhagen, copenhagenForecast)
	tool := newTool(t, client)

	for _, input := range []string{
		`{"place":"Copenhagen","days":5}`,
		`{"place":"Copenhagen","days":5.0}`,
		`{"place":"Copenhagen","days":"5"}`,
	} {
		_, err := tool.Run(context.Background(), json.RawMessage(input))
		assert.NoError(err, input)
	}
	if assert.Len(m.forecasts, 3) {
		for _, query := range m.forecasts {
			assert.Equal([]string{"5"}, query["forecast_days"])
		}
	}

	// Absent or null days take the default
	_, err := tool.Run(context.Background(), json.RawMessage(`{"place":"Copenhagen","days":null}`))
	if assert.NoError(err) {
		assert.Equal([]string{"3"}, m.forecasts[3]["forecast_days"])
	}

	for _, input := range []string{
		`{"place":"Copenhagen","days":2.5}`,
		`{"place":"Copenhagen","days":"three"}`,
		`{"place":"Copenhagen","days":1e12}`,
		`{"place":"Copenhagen","days":true}`,
	} {
		_, err := tool.Run(context.Background(), json.RawMessage(input))
		assert.ErrorIs(err, meteo.ErrBadParameter, input)
	}
	assert.EqualValues(4, m.forecast.Load())
}

func Test_forecast_011(t *testing.T) {
	// A geocoding timeout ends resolution without trying other candidates
	assert := assert.New(t)
	u, client := newUpstream(t, slow, status(http.StatusOK, copenhagenForecast))
	tool, err := forecast.New(client, client, forecast.WithTimeout(100*time.Millisecond))
	if !assert.NoError(err) {
		t.FailNow()
	}

	start := time.Now()
	_, err = tool.Forecast(context.Background(), "Paris, FR", forecast.DefaultOptions())
	assert.Less(time.Since(start), 2*time.Second)
	assert.True(errors.Is(err, context.DeadlineExceeded), err)
	assert.False(errors.Is(err, meteo.ErrNotFound))
	assert.Contains(err.Error(), `geocode "Paris, FR"`)
	assert.EqualValues(1, u.geocode.Load())
	assert.EqualValues(0, u.forecast.Load())
}

func Test_forecast_012(t *testing.T) {
	// A forecast timeout is a transport error
	assert := assert.New(t)
	u, client := newUpstream(t, status(http.StatusOK, copenhagenGeocode), slow)
	tool, err := forecast.New(client, client, forecast.WithTimeout(100*time.Millisecond))
	if !assert.NoError(err) {
		t.FailNow()
	}

	start := time.Now()
	_, err = tool.Forecast(context.Background(), "55.676,12.568", forecast.DefaultOptions())
	assert.Less(time.Since(start), 2*time.Second)
	assert.True(errors.Is(err, context.DeadlineExceeded), err)
	assert.False(errors.Is(err, meteo.ErrUnexpectedResponse))
	assert.EqualValues(0, u.geocode.Load())
	assert.EqualValues(1, u.forecast.Load())
}

func Test_forecast_013(t *testing.T) {
	// A non-success status on the first candidate ends resolution
	assert := assert.New(t)
	u, client := newUpstream(t,
		status(http.StatusServiceUnavailable, `{"error":true,"reason":"down"}`),
		status(http.StatusOK, copenhagenForecast),
	)
	resolver, err := forecast.NewResolver(client)
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = resolver.Resolve(context.Background(), "Paris, FR", "en")
	var httpErr httpresponse.Err
	if assert.True(errors.As(err, &httpErr), err) {
		assert.Equal(http.StatusServiceUnavailable, int(httpErr))
	}
	assert.False(errors.Is(err, meteo.ErrNotFound))
	assert.False(errors.Is(err, context.DeadlineExceeded))
	assert.EqualValues(1, u.geocode.Load())
	assert.EqualValues(0, u.forecast.Load())
}

// Live request against the public API
func Test_forecast_010(t *testing.T) {
	if os.Getenv("OPENMETEO_TEST") == "" {
		t.Skip("Set OPENMETEO_TEST=1 to run integration tests")
	}
	assert := assert.New(t)
	client, err := openmeteo.New()
	if !assert.NoError(err) {
		t.FailNow()
	}
	result, err := newTool(t, client).Forecast(context.Background(), "Copenhagen, DK", forecast.DefaultOptions())
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Len(result.Daily, forecast.DefaultDays)
	t.Log(result)
}
