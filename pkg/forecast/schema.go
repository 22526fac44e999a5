package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	// Packages
	validator "github.com/go-playground/validator/v10"
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Units is the temperature unit requested by the caller
type Units string

// Options control a single forecast
type Options struct {
	Days     int    `json:"days" validate:"min=1,max=16"`
	Units    Units  `json:"units" validate:"oneof=C F"`
	Language string `json:"lang" validate:"min=2,max=5"`
}

// Location is a resolved place. Name, Country and Admin1 are nil when
// the location was given as a coordinate pair, or the geocoder did not
// return them.
type Location struct {
	Name      *string `json:"name"`
	Country   *string `json:"country"`
	Admin1    *string `json:"admin1"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Day is the forecast for one calendar day. Values are nil where the
// provider has no data.
type Day struct {
	Date             string   `json:"date"`
	TempMax          *float64 `json:"t_max"`
	TempMin          *float64 `json:"t_min"`
	PrecipitationSum *float64 `json:"precipitation_sum"`
	WeatherCode      *int     `json:"weathercode"`
}

// Forecast is the reshaped response from the forecast provider
type Forecast struct {
	Timezone string            `json:"timezone"`
	Units    map[string]string `json:"units"`
	Daily    []Day             `json:"daily"`
}

// Result is returned from a forecast tool call
type Result struct {
	Query    string            `json:"query"`
	Location Location          `json:"location"`
	Units    map[string]string `json:"units"`
	Daily    []Day             `json:"daily"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Celsius    Units = "C"
	Fahrenheit Units = "F"
)

const (
	DefaultDays     = 3
	DefaultUnits    = Celsius
	DefaultLanguage = "en"
	MinDays         = 1
	MaxDays         = 16
	MinLanguage     = 2
	MaxLanguage     = 5
)

var validate = newValidator()

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// DefaultOptions returns three days in Celsius, in English
func DefaultOptions() Options {
	return Options{
		Days:     DefaultDays,
		Units:    DefaultUnits,
		Language: DefaultLanguage,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate returns ErrBadParameter when any option is out of range
func (o Options) Validate() error {
	return validationError(validate.Struct(o))
}

// TemperatureUnit returns the provider name for the unit
func (u Units) TemperatureUnit() openmeteo.TemperatureUnit {
	if u == Fahrenheit {
		return openmeteo.Fahrenheit
	}
	return openmeteo.Celsius
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Result) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (l Location) String() string {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator errors into a single bad parameter error
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return meteo.ErrBadParameter.With(err)
	}
	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, describe(field))
	}
	return meteo.ErrBadParameter.With(strings.Join(messages, "; "))
}

func describe(field validator.FieldError) string {
	var suffix string
	if field.Kind() == reflect.String {
		suffix = " characters"
	}
	switch field.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s, got %v", field.Field(), field.Param(), suffix, field.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s%s, got %v", field.Field(), field.Param(), suffix, field.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", field.Field(), strings.ReplaceAll(field.Param(), " ", ", "), field.Value())
	case "latitude", "longitude":
		return fmt.Sprintf("%s %v is out of range", field.Field(), field.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", field.Field(), field.Tag())
	}
}
