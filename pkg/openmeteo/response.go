package openmeteo

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// GeocodeResponse is the result of a place name search. Results is empty
// (and usually absent) when nothing matched.
type GeocodeResponse struct {
	Results        []GeocodeResult `json:"results,omitempty"`
	GenerationTime float64         `json:"generationtime_ms,omitempty"`
}

// GeocodeResult is a single place, ranked by the provider
type GeocodeResult struct {
	Id          int64    `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Elevation   *float64 `json:"elevation,omitempty"`
	FeatureCode string   `json:"feature_code,omitempty"`
	CountryCode *string  `json:"country_code,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Admin1      *string  `json:"admin1,omitempty"`
	Timezone    *string  `json:"timezone,omitempty"`
	Population  *int64   `json:"population,omitempty"`
}

// ForecastResponse is the daily forecast for a coordinate
type ForecastResponse struct {
	Latitude             float64           `json:"latitude"`
	Longitude            float64           `json:"longitude"`
	GenerationTime       float64           `json:"generationtime_ms,omitempty"`
	UtcOffsetSeconds     int               `json:"utc_offset_seconds"`
	Timezone             string            `json:"timezone"`
	TimezoneAbbreviation string            `json:"timezone_abbreviation,omitempty"`
	Elevation            float64           `json:"elevation,omitempty"`
	DailyUnits           map[string]string `json:"daily_units,omitempty"`
	Daily                *Daily            `json:"daily,omitempty"`
}

// Daily holds parallel arrays, one element per forecast day. Elements
// are null where the provider has no value.
type Daily struct {
	Time             []string   `json:"time"`
	WeatherCode      []*int     `json:"weathercode"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GeocodeResult) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (r ForecastResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
