package validate

import (
	"errors"
	"testing"

	"smart-home-energy-analyzer/src/types"

	"github.com/shopspring/decimal"
)

func TestParseReadingValid(t *testing.T) {
	payload := []byte(`{"timestamp":"2024-07-10T12:00:00+02:00","device_id":"HVAC_001","location":"Hallway","consumption_kwh":3.25,"status":"COOLING","simulated_outside_temp_f":65,"simulated_season":"Summer"}`)

	reading, err := ParseReading(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Timestamp != "2024-07-10T10:00:00.000000Z" {
		t.Fatalf("unexpected canonical timestamp %s", reading.Timestamp)
	}
	if !reading.ConsumptionKWh.Equal(decimal.RequireFromString("3.25")) {
		t.Fatalf("unexpected consumption %s", reading.ConsumptionKWh)
	}
	if reading.OutsideTempF == nil || *reading.OutsideTempF != 65 {
		t.Fatalf("expected outside temp 65, got %v", reading.OutsideTempF)
	}
	if reading.Season != "Summer" || reading.Location != "Hallway" || reading.Status != "COOLING" {
		t.Fatalf("unexpected string fields: %+v", reading)
	}
	if reading.ObservedAt.Hour() != 12 {
		t.Fatalf("expected producer-local hour 12, got %d", reading.ObservedAt.Hour())
	}
}

func TestParseReadingAcceptsNumericString(t *testing.T) {
	reading, err := ParseReading([]byte(`{"timestamp":"2024-07-10T12:00:00","device_id":"Fridge_Main","location":"Kitchen","consumption_kwh":" 0.15 ","status":"ON"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.ConsumptionKWh.String() != "0.15" {
		t.Fatalf("unexpected consumption %s", reading.ConsumptionKWh)
	}
	if reading.OutsideTempF != nil {
		t.Fatalf("expected no outside temperature")
	}
}

func TestParseReadingAllowsTrailingWhitespace(t *testing.T) {
	payload := []byte("{\"timestamp\":\"2024-07-10T12:00:00\",\"device_id\":\"TV_LivingRoom\",\"location\":\"Living Room\",\"consumption_kwh\":0.2,\"status\":\"ON\"}\n")
	if _, err := ParseReading(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseReadingFailures(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    error
	}{
		{"not json", `{"timestamp":`, types.ErrMalformedPayload},
		{"trailing data", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":0.2,"status":"ON"} garbage`, types.ErrMalformedPayload},
		{"second object", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":0.2,"status":"ON"}{}`, types.ErrMalformedPayload},
		{"array", `[1,2,3]`, types.ErrMalformedPayload},
		{"null", `null`, types.ErrMalformedPayload},
		{"missing location", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","consumption_kwh":0.2,"status":"ON"}`, types.ErrMissingField},
		{"null status", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":0.2,"status":null}`, types.ErrMissingField},
		{"bad consumption", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":"lots","status":"ON"}`, types.ErrInvalidNumeric},
		{"negative consumption", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":-0.5,"status":"ON"}`, types.ErrInvalidNumeric},
		{"bool consumption", `{"timestamp":"2024-07-10T12:00:00","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":true,"status":"ON"}`, types.ErrInvalidNumeric},
		{"bad temperature", `{"timestamp":"2024-07-10T12:00:00","device_id":"HVAC_001","location":"Hallway","consumption_kwh":1,"status":"ON","simulated_outside_temp_f":"warm"}`, types.ErrInvalidNumeric},
		{"bad timestamp", `{"timestamp":"last tuesday","device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":0.2,"status":"ON"}`, types.ErrInvalidTimestamp},
		{"numeric timestamp", `{"timestamp":1720612800,"device_id":"TV_LivingRoom","location":"Living Room","consumption_kwh":0.2,"status":"ON"}`, types.ErrInvalidTimestamp},
		{"numeric device", `{"timestamp":"2024-07-10T12:00:00","device_id":7,"location":"Living Room","consumption_kwh":0.2,"status":"ON"}`, types.ErrMalformedPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseReading([]byte(tc.payload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
