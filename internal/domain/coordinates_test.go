package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lon     any
		lat     any
		want    Coordinates
		wantErr bool
	}{
		{name: "numbers", lon: 2.5, lat: 48.5, want: Coordinates{Lon: 2.5, Lat: 48.5}},
		{name: "strings", lon: "2.35", lat: " 48.85 ", want: Coordinates{Lon: 2.35, Lat: 48.85}},
		{name: "json number", lon: json.Number("-1.5"), lat: json.Number("43"), want: Coordinates{Lon: -1.5, Lat: 43}},
		{name: "value object", lon: map[string]any{"@value": "4.8"}, lat: map[string]any{"@value": 45.7}, want: Coordinates{Lon: 4.8, Lat: 45.7}},
		{name: "missing longitude", lon: nil, lat: 48.0, wantErr: true},
		{name: "empty string", lon: "", lat: "48.0", wantErr: true},
		{name: "garbage", lon: "east", lat: "48.0", wantErr: true},
		{name: "nan string", lon: "NaN", lat: "48.0", wantErr: true},
		{name: "nan float", lon: math.NaN(), lat: 48.0, wantErr: true},
		{name: "out of range", lon: 200.0, lat: 48.0, wantErr: true},
		{name: "bool", lon: true, lat: 48.0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.lon, tt.lat)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoordinatesJSON(t *testing.T) {
	b, err := json.Marshal(Coordinates{Lon: 2.5, Lat: 48.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "[2.5,48.5]" {
		t.Fatalf("marshal = %s, want [2.5,48.5]", b)
	}

	var c Coordinates
	if err := json.Unmarshal([]byte("[1.25, 43.5]"), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lon != 1.25 || c.Lat != 43.5 {
		t.Fatalf("unmarshal = %v", c)
	}

	if err := json.Unmarshal([]byte("[1.25]"), &c); err == nil {
		t.Fatal("expected error for single value")
	}
}
