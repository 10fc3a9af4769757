package dynamo

import (
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// fakeDynamo keeps one table in memory. Unused API methods panic through
// the nil embedded interface.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI

	items      map[string]map[string]*dynamodb.AttributeValue
	batchSizes []int
	failBatch  int // 1-based batch number to fail, 0 for none
	scanErr    error
	pageSize   int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}, pageSize: 2}
}

func (f *fakeDynamo) BatchWriteItemWithContext(_ aws.Context, in *dynamodb.BatchWriteItemInput, _ ...request.Option) (*dynamodb.BatchWriteItemOutput, error) {
	for _, requests := range in.RequestItems {
		f.batchSizes = append(f.batchSizes, len(requests))
		if f.failBatch == len(f.batchSizes) {
			return nil, errors.New("ProvisionedThroughputExceededException")
		}
		seen := map[string]bool{}
		for _, r := range requests {
			key := *r.PutRequest.Item[KeyAttribute].S
			if seen[key] {
				return nil, errors.New("ValidationException: duplicate key in batch")
			}
			seen[key] = true
			f.items[key] = r.PutRequest.Item
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(_ aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	if f.scanErr != nil {
		return f.scanErr
	}

	cutoff := *in.ExpressionAttributeValues[":cutoff"].S
	attr := *in.ExpressionAttributeNames["#ts"]

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var matched []map[string]*dynamodb.AttributeValue
	for _, k := range keys {
		item := f.items[k]
		if *item[attr].S >= cutoff {
			matched = append(matched, item)
		}
	}

	for start := 0; ; start += f.pageSize {
		end := min(start+f.pageSize, len(matched))
		last := end >= len(matched)
		if !fn(&dynamodb.ScanOutput{Items: matched[start:end]}, last) || last {
			return nil
		}
	}
}
