package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyCoordinate = errors.New("coordinate is empty")

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.CoordsToList())
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coordinates: want [lon, lat], got %d values", len(pair))
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

// ParseCoordinates coerces graph literal values into a validated pair.
// Values may be JSON numbers, numeric strings, or JSON-LD value objects.
func ParseCoordinates(lon, lat any) (Coordinates, error) {
	x, err := ParseCoordinate(lon)
	if err != nil {
		return Coordinates{}, fmt.Errorf("longitude: %w", err)
	}
	y, err := ParseCoordinate(lat)
	if err != nil {
		return Coordinates{}, fmt.Errorf("latitude: %w", err)
	}

	if x < -180 || x > 180 {
		return Coordinates{}, fmt.Errorf("longitude %v out of range", x)
	}
	if y < -90 || y > 90 {
		return Coordinates{}, fmt.Errorf("latitude %v out of range", y)
	}

	return Coordinates{Lon: x, Lat: y}, nil
}

// ParseCoordinate parses a single coordinate literal.
func ParseCoordinate(v any) (float64, error) {
	var d decimal.Decimal

	switch t := v.(type) {
	case nil:
		return 0, errEmptyCoordinate
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("non-finite value %v", t)
		}
		d = decimal.NewFromFloat(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case json.Number:
		parsed, err := decimal.NewFromString(t.String())
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", t.String(), err)
		}
		d = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, errEmptyCoordinate
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", s, err)
		}
		d = parsed
	case map[string]any:
		// JSON-LD value object, e.g. {"@value": "2.5", "@type": "xsd:decimal"}
		return ParseCoordinate(t["@value"])
	case []any:
		if len(t) != 1 {
			return 0, fmt.Errorf("expected a single value, got %d", len(t))
		}
		return ParseCoordinate(t[0])
	default:
		return 0, fmt.Errorf("unsupported coordinate type %T", v)
	}

	f, _ := d.Float64()
	return f, nil
}
