package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Reading is one normalized telemetry sample from a device. Decimal fields
// encode as bare JSON numbers, see MarshalJSON.
type Reading struct {
	Timestamp      string          `json:"timestamp"` // canonical UTC, see utils.CanonicalTimestamp
	DeviceID       string          `json:"device_id"`
	Location       string          `json:"location"`
	ConsumptionKWh decimal.Decimal `json:"consumption_kwh"`
	Status         string          `json:"status"`
	OutsideTempF   *float64        `json:"simulated_outside_temp_f,omitempty"`
	Season         string          `json:"simulated_season,omitempty"`

	// ObservedAt keeps the producer's own UTC offset so rules can use local hours.
	ObservedAt time.Time `json:"-"`
}

type EnrichedReading struct {
	Reading
	CostUSD         decimal.Decimal `json:"cost_usd"`
	AnomalyDetected bool            `json:"anomaly_detected"`
	AnomalyMessage  string          `json:"anomaly_message"`
}

// StoredRecord is the DynamoDB row for an enriched reading.
type StoredRecord struct {
	DeviceTimestampID string `json:"device_timestamp_id"`
	EnrichedReading
}

// RecordKey identifies a (device, instant) pair.
func RecordKey(deviceID, timestamp string) string {
	return deviceID + "#" + timestamp
}

func NewStoredRecord(r EnrichedReading) StoredRecord {
	return StoredRecord{
		DeviceTimestampID: RecordKey(r.DeviceID, r.Timestamp),
		EnrichedReading:   r,
	}
}

// readingJSON is the wire form shared by every reading type.
type readingJSON struct {
	Timestamp       string      `json:"timestamp"`
	DeviceID        string      `json:"device_id"`
	Location        string      `json:"location"`
	ConsumptionKWh  json.Number `json:"consumption_kwh"`
	Status          string      `json:"status"`
	OutsideTempF    *float64    `json:"simulated_outside_temp_f,omitempty"`
	Season          string      `json:"simulated_season,omitempty"`
	CostUSD         json.Number `json:"cost_usd,omitempty"`
	AnomalyDetected *bool       `json:"anomaly_detected,omitempty"`
	AnomalyMessage  *string     `json:"anomaly_message,omitempty"`
}

func (r Reading) wire() readingJSON {
	return readingJSON{
		Timestamp:      r.Timestamp,
		DeviceID:       r.DeviceID,
		Location:       r.Location,
		ConsumptionKWh: json.Number(r.ConsumptionKWh.String()),
		Status:         r.Status,
		OutsideTempF:   r.OutsideTempF,
		Season:         r.Season,
	}
}

func (r EnrichedReading) wire() readingJSON {
	w := r.Reading.wire()
	w.CostUSD = json.Number(r.CostUSD.String())
	w.AnomalyDetected = &r.AnomalyDetected
	w.AnomalyMessage = &r.AnomalyMessage
	return w
}

func (r Reading) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r EnrichedReading) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r StoredRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DeviceTimestampID string `json:"device_timestamp_id"`
		readingJSON
	}{r.DeviceTimestampID, r.EnrichedReading.wire()})
}

type DailySummary struct {
	Date                  string  `json:"date"`
	TotalConsumptionKWh   float64 `json:"total_consumption_kwh"`
	TotalCostUSD          float64 `json:"total_cost_usd"`
	PeakDevice            string  `json:"peak_device_daily"`
	PeakDeviceConsumption float64 `json:"peak_device_consumption_daily"`
}

// Dashboard is the read API response body.
type Dashboard struct {
	RecentReadings      []StoredRecord     `json:"recentReadings"`
	DailySummaries      []DailySummary     `json:"dailySummaries"`
	Anomalies           []StoredRecord     `json:"anomalies"`
	SmartSuggestions    []string           `json:"smartSuggestions"`
	ConsumptionByDevice map[string]float64 `json:"consumptionByDevice"`
}
