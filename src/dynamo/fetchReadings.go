package dynamo

import (
	"context"
	"fmt"
	"time"

	"smart-home-energy-analyzer/src/types"
	"smart-home-energy-analyzer/src/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// ReadingsSince scans every page of the table for readings with
// timestamp >= cutoff. Rows that fail to decode are logged and skipped.
func (s *ReadingStore) ReadingsSince(ctx context.Context, cutoff time.Time) ([]types.StoredRecord, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("#ts >= :cutoff"),
		ExpressionAttributeNames: map[string]*string{
			"#ts": aws.String(TimestampAttribute),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":cutoff": {S: aws.String(utils.CanonicalTimestamp(cutoff))},
		},
	}

	var records []types.StoredRecord

	err := s.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			rec, err := itemToRecord(item)
			if err != nil {
				s.logger.Warn("skipping unreadable item", "table", s.table, "err", err)
				continue
			}
			records = append(records, rec)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.table, err)
	}

	return records, nil
}
