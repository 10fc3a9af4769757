package dynamo

import (
	"fmt"

	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/utils"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/shopspring/decimal"
)

const (
	KeyAttribute       = "device_timestamp_id"
	TimestampAttribute = "timestamp"
)

// readingItem is the table row. Numbers travel as DynamoDB N strings so
// decimals keep their exact value.
type readingItem struct {
	DeviceTimestampID string                   `dynamodbav:"device_timestamp_id"`
	Timestamp         string                   `dynamodbav:"timestamp"`
	DeviceID          string                   `dynamodbav:"device_id"`
	Location          string                   `dynamodbav:"location"`
	ConsumptionKWh    dynamodbattribute.Number `dynamodbav:"consumption_kwh"`
	CostUSD           dynamodbattribute.Number `dynamodbav:"cost_usd"`
	Status            string                   `dynamodbav:"status"`
	AnomalyDetected   bool                     `dynamodbav:"anomaly_detected"`
	AnomalyMessage    string                   `dynamodbav:"anomaly_message,omitempty"`
	OutsideTempF      *float64                 `dynamodbav:"simulated_outside_temp_f,omitempty"`
	Season            string                   `dynamodbav:"simulated_season,omitempty"`
}

func recordToItem(rec types.StoredRecord) (map[string]*dynamodb.AttributeValue, error) {
	item := readingItem{
		DeviceTimestampID: rec.DeviceTimestampID,
		Timestamp:         rec.Timestamp,
		DeviceID:          rec.DeviceID,
		Location:          rec.Location,
		ConsumptionKWh:    dynamodbattribute.Number(rec.ConsumptionKWh.String()),
		CostUSD:           dynamodbattribute.Number(rec.CostUSD.String()),
		Status:            rec.Status,
		AnomalyDetected:   rec.AnomalyDetected,
		AnomalyMessage:    rec.AnomalyMessage,
		OutsideTempF:      rec.OutsideTempF,
		Season:            rec.Season,
	}

	return dynamodbattribute.MarshalMap(item)
}

func itemToRecord(av map[string]*dynamodb.AttributeValue) (types.StoredRecord, error) {
	var item readingItem
	if err := dynamodbattribute.UnmarshalMap(av, &item); err != nil {
		return types.StoredRecord{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	consumption, err := decimal.NewFromString(string(item.ConsumptionKWh))
	if err != nil {
		return types.StoredRecord{}, fmt.Errorf("item %s: invalid consumption_kwh: %w", item.DeviceTimestampID, err)
	}

	cost := decimal.Zero
	if item.CostUSD != "" {
		if cost, err = decimal.NewFromString(string(item.CostUSD)); err != nil {
			return types.StoredRecord{}, fmt.Errorf("item %s: invalid cost_usd: %w", item.DeviceTimestampID, err)
		}
	}

	observedAt, err := utils.ParseTimestamp(item.Timestamp)
	if err != nil {
		return types.StoredRecord{}, fmt.Errorf("item %s: %w", item.DeviceTimestampID, err)
	}

	return types.StoredRecord{
		DeviceTimestampID: item.DeviceTimestampID,
		EnrichedReading: types.EnrichedReading{
			Reading: types.Reading{
				Timestamp:      item.Timestamp,
				DeviceID:       item.DeviceID,
				Location:       item.Location,
				ConsumptionKWh: consumption,
				Status:         item.Status,
				OutsideTempF:   item.OutsideTempF,
				Season:         item.Season,
				ObservedAt:     observedAt,
			},
			CostUSD:         cost,
			AnomalyDetected: item.AnomalyDetected,
			AnomalyMessage:  item.AnomalyMessage,
		},
	}, nil
}
