package models

import (
	"errors"
	"testing"
)

func TestMeasurement_AppendTo(t *testing.T) {
	tests := []struct {
		name string
		m    Measurement
		want string
	}{
		{"positive", Measurement{"Hamburg", 12.04}, "Hamburg;12.0\n"},
		{"rounds up", Measurement{"Bulawayo", 8.96}, "Bulawayo;9.0\n"},
		{"negative", Measurement{"Dikson", -11.14}, "Dikson;-11.1\n"},
		{"upper bound", Measurement{"Assab", 99.9}, "Assab;99.9\n"},
		{"lower bound", Measurement{"Anadyr", -99.9}, "Anadyr;-99.9\n"},
		{"close to upper bound", Measurement{"Assab", 99.899999}, "Assab;99.9\n"},
		{"zero", Measurement{"Oslo", 0}, "Oslo;0.0\n"},
		{"unicode name", Measurement{"Abéché", 29.4}, "Abéché;29.4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.m.AppendTo(nil)); got != tt.want {
				t.Errorf("AppendTo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMeasurement_String(t *testing.T) {
	m := Measurement{Station: "Cracow", Temperature: 9.3}
	if got := m.String(); got != "Cracow;9.3" {
		t.Errorf("String() = %q, want %q", got, "Cracow;9.3")
	}
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantErr   bool
		wantField string
		station   string
		temp      float64
	}{
		{name: "valid", line: "Hamburg;12.0", station: "Hamburg", temp: 12.0},
		{name: "negative", line: "Dikson;-11.1", station: "Dikson", temp: -11.1},
		{name: "negative zero", line: "Oslo;-0.0", station: "Oslo", temp: 0},
		{name: "upper bound", line: "Assab;99.9", station: "Assab", temp: 99.9},
		{name: "lower bound", line: "Anadyr;-99.9", station: "Anadyr", temp: -99.9},
		{name: "space in name", line: "Addis Ababa;16.0", station: "Addis Ababa", temp: 16.0},
		{name: "above range", line: "Assab;100.0", wantErr: true, wantField: "temperature"},
		{name: "below range", line: "Anadyr;-100.0", wantErr: true, wantField: "temperature"},
		{name: "two fractional digits", line: "Assab;12.34", wantErr: true, wantField: "temperature"},
		{name: "no fractional digit", line: "Assab;12", wantErr: true, wantField: "temperature"},
		{name: "missing whole part", line: "Assab;.5", wantErr: true, wantField: "temperature"},
		{name: "letters", line: "Assab;ab.c", wantErr: true, wantField: "temperature"},
		{name: "plus sign", line: "Assab;+1.0", wantErr: true, wantField: "temperature"},
		{name: "no separator", line: "Assab 12.0", wantErr: true, wantField: "line"},
		{name: "empty station", line: ";12.0", wantErr: true, wantField: "station"},
		{name: "empty line", line: "", wantErr: true, wantField: "line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMeasurement(tt.line)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMeasurement(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}

			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("error should be *ValidationError, got %T", err)
				}
				if vErr.Field != tt.wantField {
					t.Errorf("Field = %v, want %v", vErr.Field, tt.wantField)
				}
				return
			}

			if m.Station != tt.station {
				t.Errorf("Station = %v, want %v", m.Station, tt.station)
			}
			if m.Temperature != tt.temp {
				t.Errorf("Temperature = %v, want %v", m.Temperature, tt.temp)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "temperature",
		Value:   "12.34",
		Message: "invalid temperature format",
	}

	if err.Error() != "invalid temperature format" {
		t.Errorf("Error() = %v, want %v", err.Error(), "invalid temperature format")
	}

	if err.IsTransient() {
		t.Error("ValidationError should not be transient")
	}
}

func TestIsOutOfRange(t *testing.T) {
	_, err := ParseMeasurement("Assab;100.0")
	if !IsOutOfRange(err) {
		t.Errorf("IsOutOfRange(%v) = false, want true", err)
	}

	_, err = ParseMeasurement("Assab;1.00")
	if IsOutOfRange(err) {
		t.Errorf("format error reported as out of range: %v", err)
	}

	if IsOutOfRange(nil) {
		t.Error("IsOutOfRange(nil) = true")
	}
}
