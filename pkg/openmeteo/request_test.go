package openmeteo

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS: GeocodeRequest

func Test_GeocodeRequest_Values(t *testing.T) {
	tests := []struct {
		name   string
		req    *GeocodeRequest
		expect url.Values
	}{
		{
			name: "minimal request",
			req:  &GeocodeRequest{Name: "Copenhagen"},
			expect: url.Values{
				"name":   []string{"Copenhagen"},
				"format": []string{"json"},
			},
		},
		{
			name: "single result with language",
			req:  &GeocodeRequest{Name: "Paris, FR", Count: 1, Language: "fr"},
			expect: url.Values{
				"name":     []string{"Paris, FR"},
				"count":    []string{"1"},
				"language": []string{"fr"},
				"format":   []string{"json"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.req.Values())
		})
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: ForecastRequest

func Test_ForecastRequest_Values(t *testing.T) {
	daily := []string{"weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum"}
	tests := []struct {
		name   string
		req    *ForecastRequest
		expect url.Values
	}{
		{
			name: "coordinates only",
			req:  &ForecastRequest{Latitude: 55.676, Longitude: 12.568},
			expect: url.Values{
				"latitude":  []string{"55.676"},
				"longitude": []string{"12.568"},
				"daily":     daily,
				"timezone":  []string{"auto"},
			},
		},
		{
			name: "fahrenheit for two days",
			req:  &ForecastRequest{Latitude: -33.8688, Longitude: 151.2093, Days: 2, TemperatureUnit: Fahrenheit},
			expect: url.Values{
				"latitude":         []string{"-33.8688"},
				"longitude":        []string{"151.2093"},
				"daily":            daily,
				"timezone":         []string{"auto"},
				"temperature_unit": []string{"fahrenheit"},
				"forecast_days":    []string{"2"},
			},
		},
		{
			name: "whole degrees",
			req:  &ForecastRequest{Latitude: 10, Longitude: -20, Days: 16, TemperatureUnit: Celsius},
			expect: url.Values{
				"latitude":         []string{"10"},
				"longitude":        []string{"-20"},
				"daily":            daily,
				"timezone":         []string{"auto"},
				"temperature_unit": []string{"celsius"},
				"forecast_days":    []string{"16"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.req.Values())
		})
	}
}
