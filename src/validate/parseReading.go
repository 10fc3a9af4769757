package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/utils"

	"github.com/shopspring/decimal"
)

// RequiredFields must all be present (and non-null) in every payload.
var RequiredFields = []string{"timestamp", "device_id", "location", "consumption_kwh", "status"}

// ParseReading decodes one telemetry payload and normalizes it. Errors wrap
// one of the per-record sentinels in the types package.
func ParseReading(payload []byte) (types.Reading, error) {
	var raw map[string]any

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	if err := decoder.Decode(&raw); err != nil {
		return types.Reading{}, fmt.Errorf("%w: %v", types.ErrMalformedPayload, err)
	}
	if raw == nil {
		return types.Reading{}, fmt.Errorf("%w: payload is not an object", types.ErrMalformedPayload)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return types.Reading{}, fmt.Errorf("%w: trailing data after payload", types.ErrMalformedPayload)
	}

	for _, key := range RequiredFields {
		if v, ok := raw[key]; !ok || v == nil {
			return types.Reading{}, fmt.Errorf("%w: %s", types.ErrMissingField, key)
		}
	}

	var reading types.Reading
	var err error

	if reading.DeviceID, err = stringField(raw, "device_id"); err != nil {
		return types.Reading{}, err
	}
	if reading.Location, err = stringField(raw, "location"); err != nil {
		return types.Reading{}, err
	}
	if reading.Status, err = stringField(raw, "status"); err != nil {
		return types.Reading{}, err
	}

	consumption, err := decimalField(raw["consumption_kwh"])
	if err != nil {
		return types.Reading{}, fmt.Errorf("%w: consumption_kwh: %v", types.ErrInvalidNumeric, err)
	}
	if consumption.IsNegative() {
		return types.Reading{}, fmt.Errorf("%w: consumption_kwh is negative (%s)", types.ErrInvalidNumeric, consumption)
	}
	reading.ConsumptionKWh = consumption

	if v, ok := raw["simulated_outside_temp_f"]; ok && v != nil {
		temp, err := decimalField(v)
		if err != nil {
			return types.Reading{}, fmt.Errorf("%w: simulated_outside_temp_f: %v", types.ErrInvalidNumeric, err)
		}
		f := temp.InexactFloat64()
		reading.OutsideTempF = &f
	}

	if v, ok := raw["simulated_season"]; ok && v != nil {
		if reading.Season, err = stringField(raw, "simulated_season"); err != nil {
			return types.Reading{}, err
		}
	}

	tsValue, ok := raw["timestamp"].(string)
	if !ok {
		return types.Reading{}, fmt.Errorf("%w: timestamp is %T, not a string", types.ErrInvalidTimestamp, raw["timestamp"])
	}
	observedAt, err := utils.ParseTimestamp(tsValue)
	if err != nil {
		return types.Reading{}, fmt.Errorf("%w: %v", types.ErrInvalidTimestamp, err)
	}
	reading.ObservedAt = observedAt
	reading.Timestamp = utils.CanonicalTimestamp(observedAt)

	return reading, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	s, ok := raw[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not a string", types.ErrMalformedPayload, key, raw[key])
	}
	return s, nil
}

// decimalField accepts JSON numbers and numeric strings.
func decimalField(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported type %T", v)
	}
}
