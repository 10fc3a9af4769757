package dynamo

import (
	"context"
	"errors"
	"fmt"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// MaxBatchWriteItems is the BatchWriteItem request limit.
const MaxBatchWriteItems = 25

// UpsertReadings writes records in BatchWriteItem chunks. A record with an
// existing key replaces it, so redelivered readings do not duplicate.
// Failed chunks are logged and reported but never resubmitted.
func (s *ReadingStore) UpsertReadings(ctx context.Context, records []types.StoredRecord) error {
	records = dedupeByKey(records)
	if len(records) == 0 {
		return nil
	}

	var errs []error
	written := 0

	for start := 0; start < len(records); start += MaxBatchWriteItems {
		end := min(start+MaxBatchWriteItems, len(records))
		chunk := records[start:end]

		requests := make([]*dynamodb.WriteRequest, 0, len(chunk))
		for _, rec := range chunk {
			item, err := recordToItem(rec)
			if err != nil {
				s.logger.Error("failed to marshal reading", "key", rec.DeviceTimestampID, "err", err)
				errs = append(errs, fmt.Errorf("%w: marshal %s: %v", types.ErrSinkWrite, rec.DeviceTimestampID, err))
				continue
			}
			requests = append(requests, &dynamodb.WriteRequest{PutRequest: &dynamodb.PutRequest{Item: item}})
		}
		if len(requests) == 0 {
			continue
		}

		output, err := s.client.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{s.table: requests},
		})
		if err != nil {
			s.logger.Error("batch write failed", "sink", "dynamodb", "table", s.table, "count", len(requests), "err", err)
			errs = append(errs, fmt.Errorf("%w: batch of %d items to %s: %v", types.ErrSinkWrite, len(requests), s.table, err))
			continue
		}

		unprocessed := 0
		if output != nil {
			unprocessed = len(output.UnprocessedItems[s.table])
		}
		if unprocessed > 0 {
			s.logger.Warn("batch write left unprocessed items", "sink", "dynamodb", "table", s.table, "count", unprocessed)
			errs = append(errs, fmt.Errorf("%w: %d of %d items unprocessed by %s", types.ErrSinkWrite, unprocessed, len(requests), s.table))
		}
		written += len(requests) - unprocessed
	}

	s.logger.Info("batch-wrote readings", "table", s.table, "count", written, "attempted", len(records))

	return errors.Join(errs...)
}

// dedupeByKey keeps the last record per key in first-seen key order.
// BatchWriteItem rejects requests that repeat a key.
func dedupeByKey(records []types.StoredRecord) []types.StoredRecord {
	index := make(map[string]int, len(records))
	out := make([]types.StoredRecord, 0, len(records))

	for _, rec := range records {
		if i, ok := index[rec.DeviceTimestampID]; ok {
			out[i] = rec
			continue
		}
		index[rec.DeviceTimestampID] = len(out)
		out = append(out, rec)
	}

	return out
}
