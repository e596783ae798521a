package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Temperature bounds for generated readings, in °C
const (
	MinTemperature = -99.9
	MaxTemperature = 99.9

	// in tenths of a degree, for exact comparisons
	minTenths = -999
	maxTenths = 999
)

// WeatherStation is a row of the station catalogue table
type WeatherStation struct {
	StationID string    `json:"station_id" db:"station_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Measurement is one "station;temperature" record
type Measurement struct {
	Station     string
	Temperature float64
}

// AppendTo appends the serialized record, newline included, to buf.
// The temperature is rounded to one decimal place.
func (m Measurement) AppendTo(buf []byte) []byte {
	buf = append(buf, m.Station...)
	buf = append(buf, ';')
	buf = strconv.AppendFloat(buf, m.Temperature, 'f', 1, 64)
	return append(buf, '\n')
}

// String returns the serialized record without the trailing newline
func (m Measurement) String() string {
	b := m.AppendTo(make([]byte, 0, len(m.Station)+8))
	return string(b[:len(b)-1])
}

// ParseMeasurement parses a line (without newline) of the form
// <station>;<-?digits.digit> and checks the temperature bounds.
func ParseMeasurement(line string) (*Measurement, error) {
	sep := strings.IndexByte(line, ';')
	if sep < 0 {
		return nil, &ValidationError{
			Field:   "line",
			Value:   line,
			Message: "missing ';' separator",
		}
	}

	station, raw := line[:sep], line[sep+1:]
	if station == "" {
		return nil, &ValidationError{
			Field:   "station",
			Value:   line,
			Message: "empty station name",
		}
	}

	tenths, ok := parseTenths(raw)
	if !ok {
		return nil, &ValidationError{
			Field:   "temperature",
			Value:   raw,
			Message: "invalid temperature format, expected one fractional digit",
		}
	}

	if tenths < minTenths || tenths > maxTenths {
		return nil, &ValidationError{
			Field:   "temperature",
			Value:   raw,
			Message: outOfRangeMessage,
		}
	}

	return &Measurement{
		Station:     station,
		Temperature: float64(tenths) / 10.0,
	}, nil
}

// parseTenths accepts -?[0-9]+\.[0-9] and returns the value in tenths
func parseTenths(s string) (int64, bool) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := len(s) - 2
	if dot < 1 || s[dot] != '.' {
		return 0, false
	}

	whole, frac := s[:dot], s[dot+1:]
	for i := 0; i < len(whole); i++ {
		if whole[i] < '0' || whole[i] > '9' {
			return 0, false
		}
	}
	if frac[0] < '0' || frac[0] > '9' {
		return 0, false
	}

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}
	n = n*10 + int64(frac[0]-'0')
	if neg {
		n = -n
	}
	return n, true
}

const outOfRangeMessage = "temperature out of range [-99.9, 99.9]"

// IsOutOfRange reports whether err is a ValidationError for a temperature
// outside [MinTemperature, MaxTemperature]
func IsOutOfRange(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr) && vErr.Message == outOfRangeMessage
}

// ValidationError represents a data validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
