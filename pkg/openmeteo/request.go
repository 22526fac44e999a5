package openmeteo

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TemperatureUnit is the unit for temperature values in a forecast
type TemperatureUnit string

// GeocodeRequest defines a place name search
type GeocodeRequest struct {
	Name     string `json:"name"`
	Count    int    `json:"count,omitempty"`
	Language string `json:"language,omitempty"`
}

// ForecastRequest defines a daily forecast for a coordinate
type ForecastRequest struct {
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Days            int             `json:"forecast_days,omitempty"`
	TemperatureUnit TemperatureUnit `json:"temperature_unit,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Daily variables requested for every forecast
const (
	DailyWeatherCode      = "weathercode"
	DailyTemperatureMax   = "temperature_2m_max"
	DailyTemperatureMin   = "temperature_2m_min"
	DailyPrecipitationSum = "precipitation_sum"
	timezoneAuto          = "auto"
	formatJSON            = "json"
)

var dailyVariables = []string{
	DailyWeatherCode, DailyTemperatureMax, DailyTemperatureMin, DailyPrecipitationSum,
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Values converts GeocodeRequest to URL query parameters
func (r *GeocodeRequest) Values() url.Values {
	result := url.Values{}
	result.Set("name", r.Name)
	if r.Count > 0 {
		result.Set("count", fmt.Sprint(r.Count))
	}
	if r.Language != "" {
		result.Set("language", r.Language)
	}
	result.Set("format", formatJSON)
	return result
}

// Values converts ForecastRequest to URL query parameters
func (r *ForecastRequest) Values() url.Values {
	result := url.Values{}
	result.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	result.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	result.Set("daily", strings.Join(dailyVariables, ","))
	result.Set("timezone", timezoneAuto)
	if r.TemperatureUnit != "" {
		result.Set("temperature_unit", string(r.TemperatureUnit))
	}
	if r.Days > 0 {
		result.Set("forecast_days", fmt.Sprint(r.Days))
	}
	return result
}
